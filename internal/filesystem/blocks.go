package filesystem

import (
	"github.com/desertwitch/memfs/internal/schema"
)

type block [schema.BlockSize]byte

// blockStore is the sparse block map of a regular file. Blocks are only
// materialized when first written, reads of missing blocks yield zeroes.
type blockStore struct {
	blocks map[int64]*block
}

func newBlockStore() *blockStore {
	return &blockStore{
		blocks: make(map[int64]*block),
	}
}

// readAt returns n bytes starting at offset off.
func (s *blockStore) readAt(off, n int64) []byte {
	data := make([]byte, n)

	idx := off / schema.BlockSize
	blockOff := off % schema.BlockSize

	for done := int64(0); done < n; {
		count := min(schema.BlockSize-blockOff, n-done)

		if b, ok := s.blocks[idx]; ok {
			copy(data[done:done+count], b[blockOff:blockOff+count])
		}

		done += count
		idx++
		blockOff = 0
	}

	return data
}

// writeAt copies data into the blocks starting at offset off.
func (s *blockStore) writeAt(off int64, data []byte) {
	n := int64(len(data))

	idx := off / schema.BlockSize
	blockOff := off % schema.BlockSize

	for done := int64(0); done < n; {
		b, ok := s.blocks[idx]
		if !ok {
			b = &block{}
			s.blocks[idx] = b
		}

		count := min(schema.BlockSize-blockOff, n-done)
		copy(b[blockOff:blockOff+count], data[done:done+count])

		done += count
		idx++
		blockOff = 0
	}
}

// truncate discards every block at or beyond ceil(size / BlockSize) and zeroes
// the bytes past size within the last kept block.
func (s *blockStore) truncate(size int64) {
	keep := blocksFor(size)

	for idx := range s.blocks {
		if idx >= keep {
			delete(s.blocks, idx)
		}
	}

	if tail := size % schema.BlockSize; tail != 0 {
		if b, ok := s.blocks[keep-1]; ok {
			clear(b[tail:])
		}
	}
}

func (s *blockStore) count() int {
	return len(s.blocks)
}

// blocksFor returns the number of blocks needed to hold size bytes.
func blocksFor(size int64) int64 {
	n := size / schema.BlockSize
	if size%schema.BlockSize != 0 {
		n++
	}

	return n
}
