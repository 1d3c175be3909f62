package mirror

import (
	"fmt"
	"sort"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

// Entry pairs a remote URL with its local path.
type Entry struct {
	Remote string
	Local  string
}

// Rejected is a remote entry that has no safe local path.
type Rejected struct {
	Remote string
	Err    error
}

// Plan lists what a mirror pass creates. Directories are ordered so that a
// parent always comes before its children.
type Plan struct {
	Root        string
	Directories []Entry
	Files       []Entry
	Rejected    []Rejected
}

// BuildPlan maps every entry of tree. Entries whose names cannot be stored
// locally are rejected; two remote entries landing on the same local path
// is an error.
func BuildPlan(tree domain.Tree, m *Mapper) (Plan, error) {
	p := Plan{Root: m.LocalRoot}
	seen := make(map[string]string)

	claim := func(remote string, into *[]Entry) error {
		local, err := m.LocalPath(remote)
		if err != nil {
			p.Rejected = append(p.Rejected, Rejected{Remote: remote, Err: err})
			return nil
		}
		if prev, ok := seen[local]; ok {
			return fmt.Errorf("%w: %s and %s both map to %s", domain.ErrPathCollision, prev, remote, local)
		}
		seen[local] = remote
		*into = append(*into, Entry{Remote: remote, Local: local})
		return nil
	}

	for _, d := range tree.Directories {
		if err := claim(d, &p.Directories); err != nil {
			return Plan{}, err
		}
	}
	for _, f := range tree.Files {
		if err := claim(f, &p.Files); err != nil {
			return Plan{}, err
		}
	}

	sort.Slice(p.Directories, func(i, j int) bool { return p.Directories[i].Local < p.Directories[j].Local })
	return p, nil
}

// DirectoryPaths returns the local root followed by every planned directory.
func (p Plan) DirectoryPaths() []string {
	out := make([]string, 0, len(p.Directories)+1)
	out = append(out, p.Root)
	for _, d := range p.Directories {
		out = append(out, d.Local)
	}
	return out
}
