package ports

import "github.com/rojanmagar2001/gitcopy/internal/domain"

// Store accumulates one crawl. In-memory for now; implementations must be
// safe for concurrent use.
type Store interface {
	MarkVisited(url string) bool // returns true if it was newly marked
	VisitedCount() int

	AddDirectory(url string)
	AddFile(url string)
	AddSkip(s domain.Skip)

	Snapshot(root string) domain.Tree
}
