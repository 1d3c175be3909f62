package ports

import "context"

type Rebuilder interface {
	// Check reports whether the backend can run at all.
	Check(ctx context.Context) error
	// Rebuild restores the checked-in files of the repository in workTree.
	Rebuild(ctx context.Context, workTree string) error
}
