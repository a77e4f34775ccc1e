package filesystem

import (
	"log/slog"
	"sort"

	"github.com/desertwitch/memfs/internal/schema"
)

// Mkdir creates a new, empty directory at path. The final component must not
// exist (a symbolic link there counts as existing), its parent must.
func (f *Handler) Mkdir(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, err := f.resolve(path, false)
	if err != nil {
		return newPathError("mkdir", path, err)
	}

	if res.target != nil {
		return newPathError("mkdir", path, ErrPathAlreadyExists)
	}

	dir := f.arena.alloc(schema.KindDirectory)
	dir.entries[schema.SelfEntry] = dir.id
	dir.entries[schema.ParentEntry] = res.parent.id
	dir.nlink = 2

	res.parent.entries[res.name] = dir.id
	res.parent.nlink++

	slog.Debug("Created directory.",
		"path", path,
		"id", dir.id,
	)

	return nil
}

// Rmdir removes the empty directory at path. The root and the current working
// directory cannot be removed.
func (f *Handler) Rmdir(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, err := f.resolve(path, false)
	if err != nil {
		return newPathError("rmdir", path, err)
	}

	dir := res.target
	if dir == nil {
		return newPathError("rmdir", path, ErrPathNotFound)
	}

	if !dir.isDir() {
		return newPathError("rmdir", path, ErrNotADirectory)
	}

	if dir.id == f.root || dir.id == f.cwd {
		return newPathError("rmdir", path, ErrDirectoryBusy)
	}

	// Regular files and symbolic links do not add to a directory's link
	// count, so emptiness is decided on the entries themselves.
	if dir.nlink > 2 || len(dir.entries) > 2 {
		return newPathError("rmdir", path, ErrDirectoryNotEmpty)
	}

	delete(res.parent.entries, res.name)
	res.parent.nlink--

	clear(dir.entries)
	dir.nlink = 0
	f.arena.release(dir)

	slog.Debug("Removed directory.",
		"path", path,
		"id", dir.id,
	)

	return nil
}

// Cd changes the current working directory to path, following symbolic links.
func (f *Handler) Cd(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, err := f.resolve(path, true)
	if err != nil {
		return newPathError("cd", path, err)
	}

	if res.target == nil {
		return newPathError("cd", path, ErrPathNotFound)
	}

	if !res.target.isDir() {
		return newPathError("cd", path, ErrNotADirectory)
	}

	f.cwd = res.target.id
	f.cwdPath = f.pathOf(res.target)

	return nil
}

// Pwd returns the absolute path of the current working directory.
func (f *Handler) Pwd() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.cwdPath
}

// Ls returns the entries of the directory at path, or of the current working
// directory if path is empty. The "." and ".." entries come first, the rest
// is sorted by name.
func (f *Handler) Ls(path string) ([]schema.DirEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := f.arena.get(f.cwd)

	if path != "" {
		res, err := f.resolve(path, true)
		if err != nil {
			return nil, newPathError("ls", path, err)
		}

		if res.target == nil {
			return nil, newPathError("ls", path, ErrPathNotFound)
		}

		if !res.target.isDir() {
			return nil, newPathError("ls", path, ErrNotADirectory)
		}

		dir = res.target
	}

	return f.entriesOf(dir), nil
}

func (f *Handler) entriesOf(dir *descriptor) []schema.DirEntry {
	entries := make([]schema.DirEntry, 0, len(dir.entries))

	for name, id := range dir.entries {
		entry := schema.DirEntry{
			Name: name,
			ID:   id,
		}
		if d := f.arena.get(id); d != nil {
			entry.Kind = d.kind
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		ri, rj := entryRank(entries[i].Name), entryRank(entries[j].Name)
		if ri != rj {
			return ri < rj
		}

		return entries[i].Name < entries[j].Name
	})

	return entries
}

func entryRank(name string) int {
	switch name {
	case schema.SelfEntry:
		return 0
	case schema.ParentEntry:
		return 1
	default:
		return 2 //nolint:mnd
	}
}
