package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
	"github.com/rojanmagar2001/gitcopy/internal/mirror"
	"github.com/rojanmagar2001/gitcopy/internal/ports"
)

// ErrNothingToMirror is returned when the crawl found no file at all.
var ErrNothingToMirror = errors.New("no files discovered below the remote root")

var (
	skipColor  = color.New(color.FgYellow)
	okColor    = color.New(color.FgGreen)
	errorColor = color.New(color.FgRed)
)

type Orchestrator struct {
	crawler  *Crawler
	mirror   *Mirror
	rebuild  *RebuildService // nil skips the rebuild stage
	newStore func() ports.Store
	log      logrus.FieldLogger
}

// Target names where a run reads from and writes to.
type Target struct {
	RootURL  string
	WorkTree string // rebuild runs here
	MetaDir  string // mirrored metadata lands here
}

func NewOrchestrator(c *Crawler, m *Mirror, r *RebuildService, newStore func() ports.Store, log logrus.FieldLogger) *Orchestrator {
	return &Orchestrator{
		crawler:  c,
		mirror:   m,
		rebuild:  r,
		newStore: newStore,
		log:      log,
	}
}

func (o *Orchestrator) Run(ctx context.Context, t Target, stdout io.Writer) error {
	st := o.newStore()

	o.log.WithField("url", t.RootURL).Info("indexing remote tree")
	tree, err := o.crawler.Crawl(ctx, t.RootURL, st)
	if err != nil {
		return fmt.Errorf("crawl: %w", err)
	}

	for _, s := range tree.Skipped {
		skipColor.Fprintf(stdout, "SKIP  %-5s  %s\n", codeOrErr(s), s.URL)
		fmt.Fprintf(stdout, "      %s\n", s.Reason)
	}
	fmt.Fprintf(stdout,
		"\nVisited: %d\nDirectories: %d\nFiles: %d\nSkipped: %d\n",
		st.VisitedCount(), len(tree.Directories), len(tree.Files), len(tree.Skipped),
	)

	if tree.Empty() {
		return ErrNothingToMirror
	}

	mapper, err := mirror.NewMapper(tree.Root, t.MetaDir)
	if err != nil {
		return err
	}

	o.log.WithField("dir", t.MetaDir).Info("mirroring files")
	res, err := o.mirror.Run(ctx, tree, mapper)
	if err != nil {
		return fmt.Errorf("mirror: %w", err)
	}

	for _, s := range res.Failed {
		errorColor.Fprintf(stdout, "FAIL  %-5s  %s\n", codeOrErr(s), s.URL)
	}
	fmt.Fprintf(stdout, "\nMirrored directories: %d\nMirrored files: %d (%d bytes)\nFailed downloads: %d\nUnmappable entries: %d\n",
		res.Directories, res.Files, res.Bytes, len(res.Failed), res.Rejected)

	// Directories are still created when there is nothing to put in them.
	if len(tree.Files) == 0 {
		return fmt.Errorf("%w (%d directories found, none of them listing a file)", ErrNothingToMirror, len(tree.Directories))
	}

	if o.rebuild == nil {
		okColor.Fprintf(stdout, "\nMetadata copied to %s\n", t.MetaDir)
		return nil
	}

	o.log.WithField("dir", t.WorkTree).Info("rebuilding source")
	if err := o.rebuild.Run(ctx, t.WorkTree); err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}
	okColor.Fprintf(stdout, "\nSource rebuilt in %s\n", t.WorkTree)
	return nil
}

func codeOrErr(s domain.Skip) string {
	if s.StatusCode == 0 || s.Kind == domain.KindUnknown {
		return "ERR"
	}
	return fmt.Sprintf("%d", s.StatusCode)
}
