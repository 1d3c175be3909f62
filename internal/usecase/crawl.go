package usecase

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
	"github.com/rojanmagar2001/gitcopy/internal/ports"
)

const DefaultConcurrency = 10

type Crawler struct {
	fetcher    ports.Fetcher
	parser     ports.Parser
	classifier ports.Classifier
	log        logrus.FieldLogger

	concurrency int
	maxDepth    int
}

// dirJob is a directory waiting to be listed. Page is its listing when the
// classifier already downloaded it.
type dirJob struct {
	URL   string
	Depth int
	Page  *domain.Response
}

type childJob struct {
	URL   string
	Depth int
}

func NewCrawler(
	fetcher ports.Fetcher,
	parser ports.Parser,
	classifier ports.Classifier,
	log logrus.FieldLogger,
	concurrency, maxDepth int,
) *Crawler {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Crawler{
		fetcher:     fetcher,
		parser:      parser,
		classifier:  classifier,
		log:         log,
		concurrency: concurrency,
		maxDepth:    maxDepth,
	}
}

// Crawl enumerates every directory and file below rootURL. Failures at a
// single node only drop that node's subtree. The returned error is non-nil
// only when rootURL is malformed or ctx ends; the partial tree is returned
// in the latter case.
func (c *Crawler) Crawl(ctx context.Context, rootURL string, store ports.Store) (domain.Tree, error) {
	rootURL = withTrailingSlash(rootURL)
	if _, err := url.Parse(rootURL); err != nil {
		return domain.Tree{}, fmt.Errorf("parse root url: %w", err)
	}
	store.MarkVisited(rootURL)

	level := []dirJob{{URL: rootURL}}
	for len(level) > 0 {
		if err := ctx.Err(); err != nil {
			return store.Snapshot(rootURL), err
		}
		children := c.expand(ctx, level, store)
		level = c.classifyAll(ctx, children, store)
	}

	return store.Snapshot(rootURL), ctx.Err()
}

// expand lists every directory of one level and returns the unvisited
// children that strictly descend from their parent.
func (c *Crawler) expand(ctx context.Context, level []dirJob, store ports.Store) []childJob {
	perDir := make([][]childJob, len(level))

	var g errgroup.Group
	g.SetLimit(c.concurrency)

	for i, job := range level {
		if ctx.Err() != nil {
			break
		}
		if c.maxDepth > 0 && job.Depth >= c.maxDepth {
			continue
		}
		g.Go(func() error {
			perDir[i] = c.listDirectory(ctx, job, store)
			return nil
		})
	}
	_ = g.Wait()

	var out []childJob
	for _, children := range perDir {
		out = append(out, children...)
	}
	return out
}

func (c *Crawler) listDirectory(ctx context.Context, job dirJob, store ports.Store) []childJob {
	dirLog := c.log.WithField("url", job.URL)

	page := job.Page
	if page == nil {
		resp, err := c.fetcher.Fetch(ctx, job.URL)
		if err != nil {
			dirLog.WithField("reason", err.Error()).Warn("skipping directory: fetch failed")
			store.AddSkip(domain.Skip{URL: job.URL, Kind: domain.KindUnknown, Reason: err.Error()})
			return nil
		}
		if !resp.OK() {
			dirLog.WithField("status", resp.StatusCode).Warn("skipping directory: unexpected status")
			store.AddSkip(domain.Skip{URL: job.URL, Kind: domain.KindInaccessible, StatusCode: resp.StatusCode, Reason: fmt.Sprintf("status %d", resp.StatusCode)})
			return nil
		}
		page = resp
	}

	links, err := c.parser.Parse(bytes.NewReader(page.Body))
	if err != nil {
		dirLog.WithField("reason", err.Error()).Warn("skipping directory: unreadable listing")
		store.AddSkip(domain.Skip{URL: job.URL, Kind: domain.KindUnknown, Reason: err.Error()})
		return nil
	}
	if len(links) == 0 {
		dirLog.Debug("empty listing")
		return nil
	}

	parent, err := url.Parse(job.URL)
	if err != nil {
		return nil
	}

	var children []childJob
	for _, l := range links {
		child, err := resolveChild(parent, l.Href)
		if err != nil {
			dirLog.WithField("href", l.Href).Debug("ignoring malformed href")
			continue
		}
		if !descends(parent, child) {
			dirLog.WithField("href", l.Href).Debug("ignoring link outside directory")
			continue
		}
		childURL := child.String()
		if !store.MarkVisited(childURL) {
			continue
		}
		children = append(children, childJob{URL: childURL, Depth: job.Depth + 1})
	}
	return children
}

// classifyAll records every child of one level and returns the directories
// that form the next level.
func (c *Crawler) classifyAll(ctx context.Context, children []childJob, store ports.Store) []dirJob {
	results := make([]domain.Classification, len(children))
	done := make([]bool, len(children))

	var g errgroup.Group
	g.SetLimit(c.concurrency)

	for i, child := range children {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = c.classifier.Classify(ctx, child.URL)
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	var next []dirJob
	for i, res := range results {
		if !done[i] {
			continue
		}
		entryLog := c.log.WithField("url", res.URL)

		if res.Skipped() {
			reason := "unknown"
			if res.Err != nil {
				reason = res.Err.Error()
			}
			entryLog.WithFields(logrus.Fields{
				"kind":   res.Kind,
				"status": res.StatusCode,
				"reason": reason,
			}).Warn("skipping entry")
			store.AddSkip(domain.Skip{URL: res.URL, Kind: res.Kind, StatusCode: res.StatusCode, Reason: reason})
			continue
		}

		if res.Kind == domain.KindFile {
			store.AddFile(res.URL)
			entryLog.Debug("file")
			continue
		}

		dirURL := withTrailingSlash(res.URL)
		if dirURL != res.URL && !store.MarkVisited(dirURL) {
			continue
		}
		store.AddDirectory(dirURL)
		entryLog.Debug("directory")
		next = append(next, dirJob{URL: dirURL, Depth: children[i].Depth, Page: res.Page})
	}
	return next
}

func resolveChild(parent *url.URL, href string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, err
	}
	child := parent.ResolveReference(ref)
	child.Fragment = ""
	return child, nil
}

// descends reports whether child lies strictly below the directory parent
// on the same server. Query links (listing sort toggles) never descend.
func descends(parent, child *url.URL) bool {
	if !strings.EqualFold(child.Scheme, parent.Scheme) || !strings.EqualFold(child.Host, parent.Host) {
		return false
	}
	if child.RawQuery != "" {
		return false
	}
	base := parent.Path
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return len(child.Path) > len(base) && strings.HasPrefix(child.Path, base)
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
