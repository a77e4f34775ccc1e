package schema

// AccessMode is the access mode of an open-file-table entry.
type AccessMode int

const (
	// Read allows reading through a handle.
	Read AccessMode = 1 << iota

	// Write allows writing through a handle.
	Write

	// ReadWrite allows both reading and writing through a handle.
	ReadWrite = Read | Write
)

// CanRead returns true if the [AccessMode] permits reading.
func (m AccessMode) CanRead() bool {
	return m&Read != 0
}

// CanWrite returns true if the [AccessMode] permits writing.
func (m AccessMode) CanWrite() bool {
	return m&Write != 0
}

// Valid returns true if the [AccessMode] is one of [Read], [Write] or
// [ReadWrite].
func (m AccessMode) Valid() bool {
	return m == Read || m == Write || m == ReadWrite
}

func (m AccessMode) String() string {
	switch m {
	case Read:
		return "r"
	case Write:
		return "w"
	case ReadWrite:
		return "rw"
	default:
		return "?"
	}
}
