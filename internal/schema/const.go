package schema

const (
	// BlockSize is the size in bytes of a single storage block of a regular
	// file. It also bounds the length of a symbolic link's target text.
	BlockSize = 16

	// MaxOpenFiles is the capacity of the open-file table.
	MaxOpenFiles = 80

	// MaxSymlinkHops is the maximum number of symbolic links followed while
	// resolving a single path before a cycle is reported.
	MaxSymlinkHops = 25

	// RootPath is the absolute path of the root directory.
	RootPath = "/"

	// Separator is the path component separator.
	Separator = "/"

	// SelfEntry is the directory entry referencing the directory itself.
	SelfEntry = "."

	// ParentEntry is the directory entry referencing the parent directory.
	ParentEntry = ".."
)
