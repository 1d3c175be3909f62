package rebuild

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

// GitCLI shells out to an installed git binary.
type GitCLI struct {
	Binary string
}

func (g *GitCLI) binary() string {
	if g.Binary == "" {
		return "git"
	}
	return g.Binary
}

// Check runs "git --version".
func (g *GitCLI) Check(ctx context.Context) error {
	bin := g.binary()
	path, err := exec.LookPath(bin)
	if err != nil {
		return &domain.ToolMissing{Tool: bin, Err: err}
	}

	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		return &domain.ToolMissing{Tool: bin, Err: fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))}
	}
	return nil
}

// Rebuild runs "git reset --hard" inside workTree.
func (g *GitCLI) Rebuild(ctx context.Context, workTree string) error {
	bin := g.binary()

	cmd := exec.CommandContext(ctx, bin, "reset", "--hard")
	cmd.Dir = workTree
	out, err := cmd.CombinedOutput()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return &domain.ToolMissing{Tool: bin, Err: err}
		}
		return &domain.RebuildFailed{Dir: workTree, Output: strings.TrimSpace(string(out)), Err: err}
	}
	return nil
}
