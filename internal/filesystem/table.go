package filesystem

import (
	"github.com/desertwitch/memfs/internal/schema"
)

// openFile is an entry of the open-file table: a session over a regular file
// with its own byte cursor and access mode.
type openFile struct {
	id     uint64
	offset int64
	mode   schema.AccessMode
	refs   int
}

// fileTable is the bounded open-file table. Handles are indices into entries
// and always the lowest free index is handed out, so a closed handle is the
// next one to be reused.
type fileTable struct {
	entries [schema.MaxOpenFiles]*openFile
	active  int
}

func (t *fileTable) alloc(e *openFile) (int, error) {
	for fd, slot := range t.entries {
		if slot == nil {
			t.entries[fd] = e
			t.active++

			return fd, nil
		}
	}

	return -1, ErrTooManyOpenFiles
}

func (t *fileTable) get(fd int) (*openFile, error) {
	if fd < 0 || fd >= len(t.entries) || t.entries[fd] == nil {
		return nil, ErrInvalidFileDescriptor
	}

	return t.entries[fd], nil
}

func (t *fileTable) remove(fd int) (*openFile, error) {
	e, err := t.get(fd)
	if err != nil {
		return nil, err
	}

	t.entries[fd] = nil
	t.active--

	return e, nil
}

// clampOffsets moves the cursor of every entry on descriptor id that lies
// beyond size back to size.
func (t *fileTable) clampOffsets(id uint64, size int64) {
	for _, e := range t.entries {
		if e != nil && e.id == id && e.offset > size {
			e.offset = size
		}
	}
}

func (t *fileTable) list() []schema.OpenFile {
	files := make([]schema.OpenFile, 0, t.active)

	for fd, e := range t.entries {
		if e == nil {
			continue
		}

		files = append(files, schema.OpenFile{
			Handle: fd,
			ID:     e.id,
			Offset: e.offset,
			Mode:   e.mode,
			Refs:   e.refs,
		})
	}

	return files
}
