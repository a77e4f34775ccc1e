package filesystem

import (
	"log/slog"

	"github.com/desertwitch/memfs/internal/schema"
)

// Create creates a new, empty regular file at path. Symbolic links are
// followed, so a dangling link as the final component creates its target.
func (f *Handler) Create(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, err := f.resolve(path, true)
	if err != nil {
		return newPathError("create", path, err)
	}

	if res.target != nil {
		return newPathError("create", path, ErrPathAlreadyExists)
	}

	file := f.arena.alloc(schema.KindRegularFile)
	file.nlink = 1

	res.parent.entries[res.name] = file.id

	slog.Debug("Created regular file.",
		"path", path,
		"id", file.id,
	)

	return nil
}

// Truncate sets the size of the regular file at path to size. Blocks wholly
// beyond the new size are discarded. Cursors of open handles beyond the new
// size are moved back to it.
func (f *Handler) Truncate(path string, size int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if size < 0 {
		return newPathError("truncate", path, ErrInvalidSize)
	}

	res, err := f.resolve(path, true)
	if err != nil {
		return newPathError("truncate", path, err)
	}

	if res.target == nil {
		return newPathError("truncate", path, ErrPathNotFound)
	}

	if !res.target.isRegular() {
		return newPathError("truncate", path, ErrNotARegularFile)
	}

	file := res.target
	file.blocks.truncate(size)
	file.size = size

	f.files.clampOffsets(file.id, size)

	slog.Debug("Truncated regular file.",
		"path", path,
		"id", file.id,
		"size", size,
	)

	return nil
}
