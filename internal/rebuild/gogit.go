package rebuild

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

// GoGit restores the work tree in-process, without a git binary.
type GoGit struct{}

func (*GoGit) Check(context.Context) error { return nil }

// Rebuild hard-resets the work tree to HEAD.
func (*GoGit) Rebuild(ctx context.Context, workTree string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo, err := git.PlainOpen(workTree)
	if err != nil {
		return &domain.RebuildFailed{Dir: workTree, Err: fmt.Errorf("open repository: %w", err)}
	}
	head, err := repo.Head()
	if err != nil {
		return &domain.RebuildFailed{Dir: workTree, Err: fmt.Errorf("resolve HEAD: %w", err)}
	}
	wt, err := repo.Worktree()
	if err != nil {
		return &domain.RebuildFailed{Dir: workTree, Err: fmt.Errorf("open worktree: %w", err)}
	}

	if err := wt.Reset(&git.ResetOptions{Commit: head.Hash(), Mode: git.HardReset}); err != nil {
		return &domain.RebuildFailed{Dir: workTree, Err: fmt.Errorf("reset --hard %s: %w", head.Hash(), err)}
	}
	return nil
}
