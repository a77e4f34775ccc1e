package validation

import "errors"

var (
	// ErrNoRoot occurs when the root descriptor is missing or not a directory.
	ErrNoRoot = errors.New("root is missing or not a directory")

	// ErrBadCwd occurs when the current working directory is missing or not a
	// directory.
	ErrBadCwd = errors.New("working directory is missing or not a directory")

	// ErrBadSelfEntry occurs when a directory's "." entry is missing or does
	// not reference the directory itself.
	ErrBadSelfEntry = errors.New("self entry missing or misdirected")

	// ErrBadParentEntry occurs when a directory's ".." entry is missing, does
	// not reference a directory, or references a directory that does not list
	// it as a child.
	ErrBadParentEntry = errors.New("parent entry missing or misdirected")

	// ErrDanglingEntry occurs when a directory entry references a descriptor
	// that is not live.
	ErrDanglingEntry = errors.New("entry references a released descriptor")

	// ErrDirectoryHardlink occurs when a directory is entered under more than
	// one name.
	ErrDirectoryHardlink = errors.New("directory has more than one parent entry")

	// ErrLinkCountMismatch occurs when a descriptor's link count differs from
	// the number of entries referencing it.
	ErrLinkCountMismatch = errors.New("link count mismatches references")

	// ErrBlocksBeyondSize occurs when a regular file holds more blocks than
	// its size can account for.
	ErrBlocksBeyondSize = errors.New("blocks held beyond file size")

	// ErrBadSymlink occurs when a symbolic link's target is empty, too long or
	// disagrees with its recorded size.
	ErrBadSymlink = errors.New("symbolic link target malformed")

	// ErrBadOpenFile occurs when an open-file-table entry references a
	// descriptor that is not a live regular file, or its cursor lies outside
	// the file.
	ErrBadOpenFile = errors.New("open file entry malformed")

	// ErrTooManyOpenFiles occurs when the open-file table holds more entries
	// than its capacity or an entry's handle is out of range.
	ErrTooManyOpenFiles = errors.New("open file table beyond capacity")
)
