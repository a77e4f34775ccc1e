package filesystem

import (
	"log/slog"
	"math"

	"github.com/desertwitch/memfs/internal/schema"
)

// Open opens the regular file at path for reading and writing and returns its
// handle, see [Handler.OpenMode].
func (f *Handler) Open(path string) (int, error) {
	return f.OpenMode(path, schema.ReadWrite)
}

// OpenMode opens the regular file at path with the given access mode,
// following symbolic links. The returned handle is the lowest free index of
// the open-file table, its cursor starts at offset 0.
func (f *Handler) OpenMode(path string, mode schema.AccessMode) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !mode.Valid() {
		return -1, newPathError("open", path, ErrAccessDenied)
	}

	res, err := f.resolve(path, true)
	if err != nil {
		return -1, newPathError("open", path, err)
	}

	if res.target == nil {
		return -1, newPathError("open", path, ErrPathNotFound)
	}

	if !res.target.isRegular() {
		return -1, newPathError("open", path, ErrNotARegularFile)
	}

	fd, err := f.files.alloc(&openFile{
		id:   res.target.id,
		mode: mode,
		refs: 1,
	})
	if err != nil {
		return -1, newPathError("open", path, err)
	}

	res.target.openCount++

	slog.Debug("Opened regular file.",
		"path", path,
		"id", res.target.id,
		"fd", fd,
		"mode", mode,
	)

	return fd, nil
}

// Close removes the handle fd from the open-file table.
func (f *Handler) Close(fd int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, err := f.files.remove(fd)
	if err != nil {
		return newHandleError("close", fd, err)
	}

	e.refs--

	if file := f.arena.get(e.id); file != nil {
		file.openCount--
		f.releaseIfUnused(file)
	}

	return nil
}

// Seek moves the cursor of handle fd to offset, which must lie within
// [0, size] of the file.
func (f *Handler) Seek(fd int, offset int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, file, err := f.openEntry(fd)
	if err != nil {
		return newHandleError("seek", fd, err)
	}

	if offset < 0 || offset > file.size {
		return newHandleError("seek", fd, ErrInvalidOffset)
	}

	e.offset = offset

	return nil
}

// Tell returns the cursor of handle fd.
func (f *Handler) Tell(fd int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, _, err := f.openEntry(fd)
	if err != nil {
		return 0, newHandleError("tell", fd, err)
	}

	return e.offset, nil
}

// Read reads size bytes from handle fd at its cursor and advances the cursor.
// The handle must permit reading, size must be positive and must not exceed
// the bytes between the cursor and the end of the file. Blocks that were
// never written read as zeroes.
func (f *Handler) Read(fd int, size int64) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, file, err := f.openEntry(fd)
	if err != nil {
		return nil, newHandleError("read", fd, err)
	}

	if !e.mode.CanRead() {
		return nil, newHandleError("read", fd, ErrAccessDenied)
	}

	if size <= 0 || size > file.size-e.offset {
		return nil, newHandleError("read", fd, ErrInvalidSize)
	}

	n := min(size, file.size-e.offset)
	data := file.blocks.readAt(e.offset, n)
	e.offset += n

	return data, nil
}

// Write writes data to handle fd at its cursor, materializing blocks as they
// are first touched, and advances the cursor. size must be positive and equal
// to len(data), and the cursor must not move past the largest representable
// offset. The file grows when the cursor passes its end.
func (f *Handler) Write(fd int, size int64, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, file, err := f.openEntry(fd)
	if err != nil {
		return newHandleError("write", fd, err)
	}

	if !e.mode.CanWrite() {
		return newHandleError("write", fd, ErrAccessDenied)
	}

	if size <= 0 || size != int64(len(data)) || size > math.MaxInt64-e.offset {
		return newHandleError("write", fd, ErrInvalidSize)
	}

	file.blocks.writeAt(e.offset, data)
	e.offset += size
	file.size = max(file.size, e.offset)

	return nil
}

// OpenFiles returns the number of active open-file-table entries.
func (f *Handler) OpenFiles() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.files.active
}

// openEntry returns the open-file-table entry of fd and its regular file.
func (f *Handler) openEntry(fd int) (*openFile, *descriptor, error) {
	e, err := f.files.get(fd)
	if err != nil {
		return nil, nil, err
	}

	file := f.arena.get(e.id)
	if file == nil {
		return nil, nil, ErrInvalidFileDescriptor
	}

	return e, file, nil
}
