package domain

// Tree is the frozen result of one crawl. Slices are sorted.
type Tree struct {
	Root        string
	Directories []string
	Files       []string
	Skipped     []Skip
}

func (t Tree) Empty() bool {
	return len(t.Directories) == 0 && len(t.Files) == 0
}
