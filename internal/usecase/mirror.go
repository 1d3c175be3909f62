package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
	"github.com/rojanmagar2001/gitcopy/internal/mirror"
	"github.com/rojanmagar2001/gitcopy/internal/ports"
)

type MirrorResult struct {
	Directories int
	Files       int
	Bytes       int64
	Failed      []domain.Skip
	Rejected    int
}

// Mirror copies a crawled tree to local storage.
type Mirror struct {
	fetcher     ports.Fetcher
	writer      ports.LocalWriter
	log         logrus.FieldLogger
	concurrency int
}

func NewMirror(fetcher ports.Fetcher, writer ports.LocalWriter, log logrus.FieldLogger, concurrency int) *Mirror {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Mirror{fetcher: fetcher, writer: writer, log: log, concurrency: concurrency}
}

// Run creates every directory before downloading any file. A file that
// cannot be downloaded is skipped; a local write failure stops the run.
func (m *Mirror) Run(ctx context.Context, tree domain.Tree, mapper *mirror.Mapper) (MirrorResult, error) {
	plan, err := mirror.BuildPlan(tree, mapper)
	if err != nil {
		return MirrorResult{}, err
	}

	var res MirrorResult
	for _, r := range plan.Rejected {
		m.log.WithFields(logrus.Fields{"url": r.Remote, "reason": r.Err.Error()}).Warn("skipping entry: no safe local path")
	}
	res.Rejected = len(plan.Rejected)

	if err := m.writer.MakeDirectories(plan.DirectoryPaths()); err != nil {
		return res, fmt.Errorf("create directories: %w", err)
	}
	res.Directories = len(plan.Directories)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := semaphore.NewWeighted(int64(m.concurrency))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		writeErr error
	)

	for _, entry := range plan.Files {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			n, skip, err := m.copyFile(ctx, entry)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				if writeErr == nil {
					writeErr = err
					cancel()
				}
			case skip != nil:
				res.Failed = append(res.Failed, *skip)
			default:
				res.Files++
				res.Bytes += n
			}
		}()
	}
	wg.Wait()

	if writeErr != nil {
		return res, writeErr
	}
	return res, ctx.Err()
}

func (m *Mirror) copyFile(ctx context.Context, e mirror.Entry) (int64, *domain.Skip, error) {
	fileLog := m.log.WithField("url", e.Remote)

	resp, err := m.fetcher.Fetch(ctx, e.Remote)
	if err != nil {
		fileLog.WithField("reason", err.Error()).Warn("download failed")
		return 0, &domain.Skip{URL: e.Remote, Kind: domain.KindUnknown, Reason: err.Error()}, nil
	}
	if !resp.OK() {
		fileLog.WithField("status", resp.StatusCode).Warn("download failed")
		return 0, &domain.Skip{URL: e.Remote, Kind: domain.KindInaccessible, StatusCode: resp.StatusCode, Reason: fmt.Sprintf("status %d", resp.StatusCode)}, nil
	}

	if err := m.writer.WriteFile(e.Local, resp.Body); err != nil {
		return 0, nil, err
	}
	fileLog.WithField("path", e.Local).Debug("file written")
	return int64(len(resp.Body)), nil, nil
}
