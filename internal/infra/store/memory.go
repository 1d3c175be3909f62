package store

import (
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

type Memory struct {
	mu sync.Mutex

	visited map[string]struct{}
	dirs    map[string]struct{}
	files   map[string]struct{}
	skipped []domain.Skip
}

func NewMemory() *Memory {
	return &Memory{
		visited: make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		files:   make(map[string]struct{}),
	}
}

func (m *Memory) MarkVisited(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := normalizeForKey(url)
	if _, ok := m.visited[k]; ok {
		return false
	}
	m.visited[k] = struct{}{}
	return true
}

func (m *Memory) VisitedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.visited)
}

func (m *Memory) AddDirectory(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[url] = struct{}{}
}

func (m *Memory) AddFile(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[url] = struct{}{}
}

func (m *Memory) AddSkip(s domain.Skip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped = append(m.skipped, s)
}

// Snapshot copies the accumulated sets into a sorted, independent Tree.
func (m *Memory) Snapshot(root string) domain.Tree {
	m.mu.Lock()
	defer m.mu.Unlock()

	skipped := make([]domain.Skip, len(m.skipped))
	copy(skipped, m.skipped)
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].URL < skipped[j].URL })

	return domain.Tree{
		Root:        root,
		Directories: sortedKeys(m.dirs),
		Files:       sortedKeys(m.files),
		Skipped:     skipped,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// normalizeForKey is a small normalization to improve deduping:
// - strip fragment
// - lowercase hostname
func normalizeForKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	if u.Host != "" {
		// url.URL doesn't have Hostname setter, so normalize via Host field.
		host := strings.ToLower(u.Hostname())
		if port := u.Port(); port != "" {
			u.Host = host + ":" + port
		} else {
			u.Host = host
		}
	}
	return u.String()
}
