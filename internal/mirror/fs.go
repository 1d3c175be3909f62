package mirror

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultDirPerm  os.FileMode = 0o755
	DefaultFilePerm os.FileMode = 0o644
)

// FS writes the mirror to the local filesystem.
type FS struct {
	DirPerm  os.FileMode
	FilePerm os.FileMode
}

func NewFS() *FS {
	return &FS{DirPerm: DefaultDirPerm, FilePerm: DefaultFilePerm}
}

func (f *FS) MakeDirectories(paths []string) error {
	for _, p := range paths {
		if err := f.ensureDir(p); err != nil {
			return err
		}
	}
	return nil
}

func (f *FS) WriteFile(path string, data []byte) error {
	if err := f.ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	info, err := os.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("conflict: %s is a directory", path)
	case err != nil && !os.IsNotExist(err):
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, f.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (f *FS) ensureDir(path string) error {
	info, err := os.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		return nil

	case err == nil && !info.IsDir():
		return fmt.Errorf("conflict: %s exists and is not a directory", path)

	case os.IsNotExist(err):
		if err := os.MkdirAll(path, f.DirPerm); err != nil {
			return fmt.Errorf("mkdir %s: %w", path, err)
		}
		return nil

	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}
