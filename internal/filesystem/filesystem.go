// Package filesystem implements an in-memory Unix-like filesystem: a namespace
// of directories, regular files and symbolic links over an arena of
// descriptors, regular files backed by sparse fixed-size blocks, and a bounded
// open-file table. The [Handler] exposes the POSIX-style operation set.
//
// All operations of a [Handler] are serialized by a single lock, validate
// every precondition before mutating anything and report failures as a
// [*PathError] wrapping one of the package's sentinel errors.
package filesystem

import (
	"log/slog"
	"sync"

	"github.com/desertwitch/memfs/internal/schema"
)

// Handler is the principal filesystem implementation. Its zero value is not
// usable, construct it with [NewHandler].
type Handler struct {
	mu sync.Mutex

	arena *arena
	files fileTable

	root    uint64
	cwd     uint64
	cwdPath string
}

// NewHandler returns a pointer to a new [Handler] holding an empty root
// directory, which is also the initial working directory.
func NewHandler() *Handler {
	f := &Handler{
		arena: newArena(),
	}

	root := f.arena.alloc(schema.KindDirectory)
	root.entries[schema.SelfEntry] = root.id
	root.entries[schema.ParentEntry] = root.id
	root.nlink = 2

	f.root = root.id
	f.cwd = root.id
	f.cwdPath = schema.RootPath

	return f
}

// dropLink removes one hard link from a file or symbolic link descriptor and
// releases it once it is neither linked nor open.
func (f *Handler) dropLink(d *descriptor) {
	d.nlink--
	f.releaseIfUnused(d)
}

func (f *Handler) releaseIfUnused(d *descriptor) {
	if d.nlink > 0 || d.openCount > 0 {
		return
	}

	slog.Debug("Released descriptor.",
		"id", d.id,
		"kind", d.kind,
	)

	f.arena.release(d)
}
