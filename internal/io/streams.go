package io

import (
	"fmt"
	"io"
)

// Reader is an [io.Reader] over an open handle. It reads from the handle's
// cursor and reports [io.EOF] once the cursor reaches the end of the file.
type Reader struct {
	fsOps fsProvider
	fd    int
}

// NewReader returns a pointer to a new [Reader] over handle fd.
func NewReader(fsOps fsProvider, fd int) *Reader {
	return &Reader{
		fsOps: fsOps,
		fd:    fd,
	}
}

func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	st, err := r.fsOps.Fstat(r.fd)
	if err != nil {
		return 0, fmt.Errorf("(io-read) %w", err)
	}

	off, err := r.fsOps.Tell(r.fd)
	if err != nil {
		return 0, fmt.Errorf("(io-read) %w", err)
	}

	remaining := st.Size - off
	if remaining <= 0 {
		return 0, io.EOF
	}

	data, err := r.fsOps.Read(r.fd, min(int64(len(p)), remaining))
	if err != nil {
		return 0, fmt.Errorf("(io-read) %w", err)
	}

	return copy(p, data), nil
}

// Writer is an [io.Writer] over an open handle, writing at the handle's
// cursor.
type Writer struct {
	fsOps fsProvider
	fd    int
}

// NewWriter returns a pointer to a new [Writer] over handle fd.
func NewWriter(fsOps fsProvider, fd int) *Writer {
	return &Writer{
		fsOps: fsOps,
		fd:    fd,
	}
}

func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if err := w.fsOps.Write(w.fd, int64(len(p)), p); err != nil {
		return 0, fmt.Errorf("(io-write) %w", err)
	}

	return len(p), nil
}
