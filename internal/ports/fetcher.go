package ports

import (
	"context"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

// Fetcher issues a GET and returns the fully read response.
// Transport failures come back as *domain.TransportError.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*domain.Response, error)
	// FetchIf reads the body only when keep accepts the status and headers;
	// otherwise the returned Body is nil.
	FetchIf(ctx context.Context, url string, keep func(*domain.Response) bool) (*domain.Response, error)
}
