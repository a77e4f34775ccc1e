package schema

// DirEntry is a single named entry of a directory. It is meant to be passed by
// value.
type DirEntry struct {
	Name string
	ID   uint64
	Kind Kind
}

// OpenFile describes an active open-file-table entry.
type OpenFile struct {
	Handle int
	ID     uint64
	Offset int64
	Mode   AccessMode
	Refs   int
}

// Snapshot is a consistent copy of the whole namespace, taken under the
// filesystem lock. Descriptors maps every live descriptor id to its [Stat],
// Directories maps every directory id to its entries (including the "." and
// ".." entries).
type Snapshot struct {
	Root        uint64
	Cwd         uint64
	CwdPath     string
	Descriptors map[uint64]Stat
	Directories map[uint64][]DirEntry
	OpenFiles   []OpenFile
}
