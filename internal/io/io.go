// Package io streams the contents of regular files in and out of the
// in-memory filesystem: [io.Reader] and [io.Writer] adapters over open
// handles, blake3 checksums and verified copies between paths.
package io

import (
	"context"
	"io"

	"github.com/desertwitch/memfs/internal/schema"
)

// chunkSize is the number of bytes moved per read or write call.
const chunkSize = 4 * schema.BlockSize

type fsProvider interface {
	Create(path string) error
	Link(src, dst string) error
	Unlink(path string) error
	Stat(path string) (schema.Stat, error)
	OpenMode(path string, mode schema.AccessMode) (int, error)
	Close(fd int) error
	Fstat(fd int) (schema.Stat, error)
	Tell(fd int) (int64, error)
	Read(fd int, size int64) ([]byte, error)
	Write(fd int, size int64, data []byte) error
}

// Handler is the principal implementation for the IO services.
type Handler struct {
	FSOps fsProvider
}

// NewHandler returns a pointer to a new IO [Handler].
func NewHandler(fsOps fsProvider) *Handler {
	return &Handler{
		FSOps: fsOps,
	}
}

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, context.Canceled
	default:
		return cr.reader.Read(p)
	}
}
