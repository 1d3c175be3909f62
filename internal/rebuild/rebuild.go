package rebuild

import (
	"fmt"

	"github.com/rojanmagar2001/gitcopy/internal/ports"
)

const (
	BackendGit   = "git"
	BackendGoGit = "go-git"
)

func New(backend string) (ports.Rebuilder, error) {
	switch backend {
	case "", BackendGit:
		return &GitCLI{Binary: "git"}, nil
	case BackendGoGit:
		return &GoGit{}, nil
	default:
		return nil, fmt.Errorf("unknown rebuilder %q (want %s or %s)", backend, BackendGit, BackendGoGit)
	}
}
