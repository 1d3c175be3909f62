package mirror

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Mapper turns remote URLs below RootURL into paths below LocalRoot.
type Mapper struct {
	root      *url.URL
	rootPath  string
	LocalRoot string
}

func NewMapper(rootURL, localRoot string) (*Mapper, error) {
	u, err := url.Parse(rootURL)
	if err != nil {
		return nil, fmt.Errorf("parse root url: %w", err)
	}
	p := u.EscapedPath()
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return &Mapper{root: u, rootPath: p, LocalRoot: localRoot}, nil
}

// LocalPath strips the root prefix from remote, percent-decodes each segment
// and joins the result under LocalRoot.
func (m *Mapper) LocalPath(remote string) (string, error) {
	u, err := url.Parse(remote)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", remote, err)
	}
	if !strings.EqualFold(u.Host, m.root.Host) {
		return "", fmt.Errorf("%s is not on %s", remote, m.root.Host)
	}

	escaped := u.EscapedPath()
	if escaped+"/" == m.rootPath {
		escaped = m.rootPath
	}
	if !strings.HasPrefix(escaped, m.rootPath) {
		return "", fmt.Errorf("%s is outside %s", remote, m.root.String())
	}

	rel := strings.Trim(strings.TrimPrefix(escaped, m.rootPath), "/")
	if rel == "" {
		return filepath.Clean(m.LocalRoot), nil
	}

	var segs []string
	for _, raw := range strings.Split(rel, "/") {
		seg, err := url.PathUnescape(raw)
		if err != nil {
			return "", fmt.Errorf("decode segment %q of %s: %w", raw, remote, err)
		}
		if err := ValidateName(seg); err != nil {
			return "", fmt.Errorf("%s: %w", remote, err)
		}
		segs = append(segs, seg)
	}
	return SafeJoin(m.LocalRoot, segs...)
}

// ValidateName checks that name is a single path segment: no separators,
// not "." or "..", not absolute.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty path segment")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid path segment %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("path segment must not contain separators: %q", name)
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("absolute path segment: %q", name)
	}
	return nil
}

// SafeJoin joins root and parts and makes sure the result stays inside root.
func SafeJoin(root string, parts ...string) (string, error) {
	p := filepath.Join(append([]string{root}, parts...)...)
	cleanRoot := filepath.Clean(root)
	cleanP := filepath.Clean(p)

	rel, err := filepath.Rel(cleanRoot, cleanP)
	if err != nil {
		return "", err
	}
	relSl := filepath.ToSlash(rel)
	if relSl == ".." || strings.HasPrefix(relSl, "../") {
		return "", fmt.Errorf("path escapes %s: %s", root, p)
	}
	return cleanP, nil
}
