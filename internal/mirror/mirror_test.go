package mirror

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

const root = "http://repo.example/site/.git/"

func TestMapper_LocalPath(t *testing.T) {
	local := t.TempDir()
	m, err := NewMapper(root, local)
	require.NoError(t, err)

	tests := []struct {
		remote string
		want   string
	}{
		{root + "HEAD", filepath.Join(local, "HEAD")},
		{root + "refs/", filepath.Join(local, "refs")},
		{root + "refs/heads/main", filepath.Join(local, "refs", "heads", "main")},
		{root + "objects/pack/pack-1%20copy.idx", filepath.Join(local, "objects", "pack", "pack-1 copy.idx")},
		{"http://REPO.example/site/.git/config", filepath.Join(local, "config")},
		{root, filepath.Clean(local)},
	}
	for _, tt := range tests {
		got, err := m.LocalPath(tt.remote)
		require.NoError(t, err, tt.remote)
		assert.Equal(t, tt.want, got, tt.remote)
	}
}

func TestMapper_LocalPathRejectsEscapes(t *testing.T) {
	m, err := NewMapper(root, t.TempDir())
	require.NoError(t, err)

	for _, remote := range []string{
		"http://repo.example/site/other",
		"http://evil.example/site/.git/HEAD",
		root + "refs/%2E%2E/%2E%2E/etc",
		root + "a%2Fb",
		root + "a%5Cb",
	} {
		_, err := m.LocalPath(remote)
		assert.Error(t, err, remote)
	}
}

func TestSafeJoin(t *testing.T) {
	_, err := SafeJoin("/tmp/x", "..", "y")
	require.Error(t, err)

	p, err := SafeJoin("/tmp/x", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/x", "a", "b"), p)
}

func TestBuildPlan(t *testing.T) {
	local := t.TempDir()
	m, err := NewMapper(root, local)
	require.NoError(t, err)

	tree := domain.Tree{
		Root:        root,
		Directories: []string{root + "a/b/", root + "a/"},
		Files:       []string{root + "a/x.txt", root + "a/b/y.txt", root + "bad%2Fname"},
	}

	p, err := BuildPlan(tree, m)
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Remote: root + "a/", Local: filepath.Join(local, "a")},
		{Remote: root + "a/b/", Local: filepath.Join(local, "a", "b")},
	}, p.Directories)
	assert.Len(t, p.Files, 2)
	require.Len(t, p.Rejected, 1)
	assert.Equal(t, root+"bad%2Fname", p.Rejected[0].Remote)
	assert.Equal(t, []string{local, filepath.Join(local, "a"), filepath.Join(local, "a", "b")}, p.DirectoryPaths())
}

func TestBuildPlan_Collision(t *testing.T) {
	m, err := NewMapper(root, t.TempDir())
	require.NoError(t, err)

	tree := domain.Tree{Files: []string{root + "a%20b", root + "a b"}}

	_, err = BuildPlan(tree, m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPathCollision))
}

func TestFS_MakeDirectoriesAndWriteFile(t *testing.T) {
	local := t.TempDir()
	fs := NewFS()

	require.NoError(t, fs.MakeDirectories([]string{filepath.Join(local, "a"), filepath.Join(local, "a", "b")}))
	require.NoError(t, fs.MakeDirectories([]string{filepath.Join(local, "a")}))

	target := filepath.Join(local, "a", "b", "y.txt")
	require.NoError(t, fs.WriteFile(target, []byte("first")))
	require.NoError(t, fs.WriteFile(target, []byte("second")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// parents are created on demand
	deep := filepath.Join(local, "c", "d", "z")
	require.NoError(t, fs.WriteFile(deep, []byte{0x78, 0x9c, 0x00}))
	data, err = os.ReadFile(deep)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x78, 0x9c, 0x00}, data)
}

func TestFS_Conflicts(t *testing.T) {
	local := t.TempDir()
	fs := NewFS()

	file := filepath.Join(local, "HEAD")
	require.NoError(t, fs.WriteFile(file, []byte("ref")))

	assert.Error(t, fs.MakeDirectories([]string{file}))
	assert.Error(t, fs.WriteFile(filepath.Join(local, "HEAD", "child"), []byte("x")))

	dir := filepath.Join(local, "refs")
	require.NoError(t, fs.MakeDirectories([]string{dir}))
	assert.Error(t, fs.WriteFile(dir, []byte("x")))
}
