package filesystem

import (
	"github.com/desertwitch/memfs/internal/schema"
)

// descriptor is the inode-equivalent of the filesystem. Which of the fields
// are meaningful depends on its kind: directories use entries, regular files
// use blocks, symbolic links use target.
type descriptor struct {
	id    uint64
	kind  schema.Kind
	size  int64
	nlink int

	entries map[string]uint64
	blocks  *blockStore
	target  string

	// openCount is the number of open-file-table entries referencing a
	// regular file. An unlinked file stays allocated while it is non-zero.
	openCount int
}

func (d *descriptor) isDir() bool {
	return d.kind == schema.KindDirectory
}

func (d *descriptor) isRegular() bool {
	return d.kind == schema.KindRegularFile
}

func (d *descriptor) isSymlink() bool {
	return d.kind == schema.KindSymlink
}

// parentID returns the id referenced by the ".." entry of a directory.
func (d *descriptor) parentID() uint64 {
	return d.entries[schema.ParentEntry]
}

func (d *descriptor) stat() schema.Stat {
	st := schema.Stat{
		ID:     d.id,
		Kind:   d.kind,
		Mode:   d.kind.Mode(),
		Target: d.target,
		Nlink:  d.nlink,
		Size:   d.size,
	}

	if d.blocks != nil {
		st.Blocks = d.blocks.count()
	}

	return st
}

// arena is the dense descriptor table. Slot 0 is never handed out, so an id
// of 0 always means "no descriptor". Released ids are pushed onto the free
// stack and reused before the table grows.
type arena struct {
	slots []*descriptor
	free  []uint64
}

func newArena() *arena {
	return &arena{
		slots: []*descriptor{nil},
	}
}

func (a *arena) alloc(kind schema.Kind) *descriptor {
	var id uint64

	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		id = uint64(len(a.slots))
		a.slots = append(a.slots, nil)
	}

	d := &descriptor{
		id:   id,
		kind: kind,
	}

	switch kind {
	case schema.KindDirectory:
		d.entries = make(map[string]uint64)
	case schema.KindRegularFile:
		d.blocks = newBlockStore()
	}

	a.slots[id] = d

	return d
}

func (a *arena) get(id uint64) *descriptor {
	if id == 0 || id >= uint64(len(a.slots)) {
		return nil
	}

	return a.slots[id]
}

func (a *arena) release(d *descriptor) {
	if a.get(d.id) != d {
		return
	}

	a.slots[d.id] = nil
	a.free = append(a.free, d.id)

	d.entries = nil
	d.blocks = nil
}

// live returns all allocated descriptors in id order.
func (a *arena) live() []*descriptor {
	ds := make([]*descriptor, 0, len(a.slots))
	for _, d := range a.slots {
		if d != nil {
			ds = append(ds, d)
		}
	}

	return ds
}
