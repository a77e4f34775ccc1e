package filesystem

import (
	"github.com/desertwitch/memfs/internal/schema"
)

// Usage holds aggregate storage information of a [Handler]. It is meant to be
// passed by value.
type Usage struct {
	Descriptors int
	Directories int
	Files       int
	Symlinks    int

	// Blocks is the number of materialized blocks over all regular files,
	// BlockBytes the memory they occupy. LogicalBytes is the sum of all
	// regular file sizes, which exceeds BlockBytes for sparse files.
	Blocks       int
	BlockBytes   int64
	LogicalBytes int64

	OpenFiles int
}

// Usage returns the current [Usage] of the filesystem.
func (f *Handler) Usage() Usage {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := Usage{
		OpenFiles: f.files.active,
	}

	for _, d := range f.arena.live() {
		u.Descriptors++

		switch d.kind {
		case schema.KindDirectory:
			u.Directories++
		case schema.KindRegularFile:
			u.Files++
			u.Blocks += d.blocks.count()
			u.LogicalBytes += d.size
		case schema.KindSymlink:
			u.Symlinks++
		}
	}

	u.BlockBytes = int64(u.Blocks) * schema.BlockSize

	return u
}
