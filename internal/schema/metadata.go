package schema

import "golang.org/x/sys/unix"

// Kind is the kind of a descriptor.
type Kind int

const (
	// KindDirectory is a directory holding named entries.
	KindDirectory Kind = iota + 1

	// KindRegularFile is a regular file backed by sparse blocks.
	KindRegularFile

	// KindSymlink is a symbolic link holding a target path text.
	KindSymlink
)

// String returns the human-readable name of a [Kind].
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindRegularFile:
		return "regular file"
	case KindSymlink:
		return "symbolic link"
	default:
		return "unknown"
	}
}

// Mode returns the Unix file type bits belonging to a [Kind].
func (k Kind) Mode() uint32 {
	switch k {
	case KindDirectory:
		return unix.S_IFDIR
	case KindRegularFile:
		return unix.S_IFREG
	case KindSymlink:
		return unix.S_IFLNK
	default:
		return 0
	}
}

// Stat holds the metadata of a single descriptor at the time it was taken. It
// is meant to be passed by value.
type Stat struct {
	ID     uint64
	Kind   Kind
	Mode   uint32
	Target string
	Nlink  int
	Size   int64
	Blocks int
}

// IsDir returns true if the [Stat] describes a directory.
func (s Stat) IsDir() bool {
	return s.Kind == KindDirectory
}

// IsRegular returns true if the [Stat] describes a regular file.
func (s Stat) IsRegular() bool {
	return s.Kind == KindRegularFile
}

// IsSymlink returns true if the [Stat] describes a symbolic link.
func (s Stat) IsSymlink() bool {
	return s.Kind == KindSymlink
}
