package ports

import (
	"context"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

// Classifier decides whether a URL is a directory or a file. It never fails:
// problems are reported as Inaccessible or Unknown classifications.
type Classifier interface {
	Classify(ctx context.Context, url string) domain.Classification
}
