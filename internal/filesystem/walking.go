package filesystem

import (
	"errors"
	"io/fs"

	"github.com/desertwitch/memfs/internal/schema"
)

// WalkFunc is the function called by [Handler.Walk] for each visited
// descriptor. Returning [fs.SkipDir] for a directory skips its contents,
// returning [fs.SkipAll] stops the walk, any other error aborts it.
type WalkFunc func(path string, st schema.Stat) error

// Walk walks the tree rooted at the directory (or file) at path in lexical
// order, calling fn for the root and every descendant, but never for "." and
// "..". Symbolic links are reported, not followed. The walk operates on a
// snapshot taken at the start, so fn may call back into the [Handler].
func (f *Handler) Walk(path string, fn WalkFunc) error {
	f.mu.Lock()

	res, err := f.resolve(path, true)
	if err != nil {
		f.mu.Unlock()

		return newPathError("walk", path, err)
	}

	if res.target == nil {
		f.mu.Unlock()

		return newPathError("walk", path, ErrPathNotFound)
	}

	rootPath, err := normalizePath(path, f.cwdPath)
	if err != nil {
		f.mu.Unlock()

		return newPathError("walk", path, err)
	}
	if res.target.isDir() {
		rootPath = f.pathOf(res.target)
	}

	snap := f.snapshot()
	rootID := res.target.id

	f.mu.Unlock()

	err = walkSnapshot(snap, rootPath, rootID, fn)
	if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}

	return err
}

func walkSnapshot(snap *schema.Snapshot, path string, id uint64, fn WalkFunc) error {
	st := snap.Descriptors[id]

	if err := fn(path, st); err != nil {
		return err
	}

	if !st.IsDir() {
		return nil
	}

	for _, entry := range snap.Directories[id] {
		if entry.Name == schema.SelfEntry || entry.Name == schema.ParentEntry {
			continue
		}

		childPath := path + schema.Separator + entry.Name
		if path == schema.RootPath {
			childPath = path + entry.Name
		}

		if err := walkSnapshot(snap, childPath, entry.ID, fn); err != nil {
			if errors.Is(err, fs.SkipDir) && snap.Descriptors[entry.ID].IsDir() {
				continue
			}

			return err
		}
	}

	return nil
}
