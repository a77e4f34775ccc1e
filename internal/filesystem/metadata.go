package filesystem

import (
	"github.com/desertwitch/memfs/internal/schema"
)

// Stat returns the metadata of the descriptor at path. A symbolic link as the
// final component is described itself, not followed.
func (f *Handler) Stat(path string) (schema.Stat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, err := f.resolve(path, false)
	if err != nil {
		return schema.Stat{}, newPathError("stat", path, err)
	}

	if res.target == nil {
		return schema.Stat{}, newPathError("stat", path, ErrPathNotFound)
	}

	return res.target.stat(), nil
}

// Fstat returns the metadata of the regular file behind handle fd. It also
// works for files that were unlinked while open.
func (f *Handler) Fstat(fd int) (schema.Stat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, file, err := f.openEntry(fd)
	if err != nil {
		return schema.Stat{}, newHandleError("fstat", fd, err)
	}

	return file.stat(), nil
}

// Snapshot returns a consistent copy of every live descriptor, every
// directory's entries and the open-file table.
func (f *Handler) Snapshot() *schema.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.snapshot()
}

func (f *Handler) snapshot() *schema.Snapshot {
	snap := &schema.Snapshot{
		Root:        f.root,
		Cwd:         f.cwd,
		CwdPath:     f.cwdPath,
		Descriptors: make(map[uint64]schema.Stat),
		Directories: make(map[uint64][]schema.DirEntry),
		OpenFiles:   f.files.list(),
	}

	for _, d := range f.arena.live() {
		snap.Descriptors[d.id] = d.stat()

		if d.isDir() {
			snap.Directories[d.id] = f.entriesOf(d)
		}
	}

	return snap
}
