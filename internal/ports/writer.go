package ports

// LocalWriter persists the mirrored tree.
type LocalWriter interface {
	// MakeDirectories creates each path, parents included. Existing
	// directories are fine; an existing non-directory is a conflict.
	MakeDirectories(paths []string) error
	// WriteFile stores data at path, creating missing parents and
	// overwriting any existing file.
	WriteFile(path string, data []byte) error
}
