package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

func TestMemory_MarkVisitedNormalizesHostAndFragment(t *testing.T) {
	m := NewMemory()

	require.True(t, m.MarkVisited("http://Example.com:8080/.git/"))
	assert.False(t, m.MarkVisited("http://example.com:8080/.git/#top"))
	assert.True(t, m.MarkVisited("http://example.com:8080/.git/refs/"))
	assert.Equal(t, 2, m.VisitedCount())
}

func TestMemory_SnapshotIsSortedAndDetached(t *testing.T) {
	m := NewMemory()
	m.AddFile("http://h/.git/z")
	m.AddFile("http://h/.git/a")
	m.AddFile("http://h/.git/a")
	m.AddDirectory("http://h/.git/refs/")
	m.AddSkip(domain.Skip{URL: "http://h/.git/y", Kind: domain.KindInaccessible, StatusCode: 403})
	m.AddSkip(domain.Skip{URL: "http://h/.git/b", Kind: domain.KindUnknown})

	tree := m.Snapshot("http://h/.git/")

	assert.Equal(t, "http://h/.git/", tree.Root)
	assert.Equal(t, []string{"http://h/.git/a", "http://h/.git/z"}, tree.Files)
	assert.Equal(t, []string{"http://h/.git/refs/"}, tree.Directories)
	require.Len(t, tree.Skipped, 2)
	assert.Equal(t, "http://h/.git/b", tree.Skipped[0].URL)

	m.AddFile("http://h/.git/later")
	assert.Len(t, tree.Files, 2)
}

func TestMemory_ConcurrentInsertion(t *testing.T) {
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.AddFile(fmt.Sprintf("http://h/f%d", i))
			m.AddDirectory(fmt.Sprintf("http://h/d%d/", i%10))
			m.MarkVisited(fmt.Sprintf("http://h/f%d", i))
		}(i)
	}
	wg.Wait()

	tree := m.Snapshot("http://h/")
	assert.Len(t, tree.Files, 50)
	assert.Len(t, tree.Directories, 10)
	assert.Equal(t, 50, m.VisitedCount())
}
