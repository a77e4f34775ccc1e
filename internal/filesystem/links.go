package filesystem

import (
	"log/slog"

	"github.com/desertwitch/memfs/internal/schema"
)

// Link creates a new hard link at dst for the descriptor at src. A symbolic
// link as the final component of src is linked itself, not followed.
// Directories cannot be hard linked.
func (f *Handler) Link(src, dst string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	from, err := f.resolve(src, false)
	if err != nil {
		return newPathError("link", src, err)
	}

	if from.target == nil {
		return newPathError("link", src, ErrPathNotFound)
	}

	if from.target.isDir() {
		return newPathError("link", src, ErrUnsupportedLinkTarget)
	}

	to, err := f.resolve(dst, false)
	if err != nil {
		return newPathError("link", dst, err)
	}

	if to.target != nil {
		return newPathError("link", dst, ErrPathAlreadyExists)
	}

	to.parent.entries[to.name] = from.target.id
	from.target.nlink++

	slog.Debug("Created hard link.",
		"src", src,
		"dst", dst,
		"id", from.target.id,
		"nlink", from.target.nlink,
	)

	return nil
}

// Unlink removes the directory entry at path. A symbolic link as the final
// component is removed itself. The descriptor is released once its last link
// is gone and no open handle refers to it.
func (f *Handler) Unlink(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, err := f.resolve(path, false)
	if err != nil {
		return newPathError("unlink", path, err)
	}

	if res.target == nil {
		return newPathError("unlink", path, ErrPathNotFound)
	}

	if res.target.isDir() {
		return newPathError("unlink", path, ErrIsADirectory)
	}

	delete(res.parent.entries, res.name)
	f.dropLink(res.target)

	slog.Debug("Removed link.",
		"path", path,
		"id", res.target.id,
		"nlink", res.target.nlink,
	)

	return nil
}

// Symlink creates a symbolic link at path holding target verbatim. The target
// is not required to exist, it must be non-empty and at most
// [schema.BlockSize] bytes long.
func (f *Handler) Symlink(target, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if target == "" {
		return newPathError("symlink", path, ErrInvalidPath)
	}

	if len(target) > schema.BlockSize {
		return newPathError("symlink", path, ErrTargetTooLong)
	}

	res, err := f.resolve(path, false)
	if err != nil {
		return newPathError("symlink", path, err)
	}

	if res.target != nil {
		return newPathError("symlink", path, ErrPathAlreadyExists)
	}

	link := f.arena.alloc(schema.KindSymlink)
	link.target = target
	link.size = int64(len(target))
	link.nlink = 1

	res.parent.entries[res.name] = link.id

	slog.Debug("Created symbolic link.",
		"path", path,
		"target", target,
		"id", link.id,
	)

	dangling, err := f.walk(substituteLink(target, splitPath(f.pathOf(res.parent)), nil), true)
	if err != nil || dangling.target == nil {
		slog.Debug("Symbolic link target does not resolve.",
			"path", path,
			"target", target,
			"err", err,
		)
	}

	return nil
}
