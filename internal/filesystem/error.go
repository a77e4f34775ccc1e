package filesystem

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	// ErrPathNotFound is an error that occurs when a parent directory or the
	// target of a path is missing where its existence was required.
	ErrPathNotFound = errors.New("path not found")

	// ErrPathAlreadyExists is an error that occurs when the target of a path is
	// present where its absence was required.
	ErrPathAlreadyExists = errors.New("path already exists")

	// ErrNotADirectory is an error that occurs when an operation requiring a
	// directory is given a path to another kind of descriptor.
	ErrNotADirectory = errors.New("not a directory")

	// ErrNotARegularFile is an error that occurs when an operation requiring a
	// regular file is given a path to another kind of descriptor.
	ErrNotARegularFile = errors.New("not a regular file")

	// ErrIsADirectory is an error that occurs when unlink is attempted on a
	// directory, which can only be removed with rmdir.
	ErrIsADirectory = errors.New("is a directory")

	// ErrInvalidPath is an error that occurs when a path is empty after
	// normalization.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidPathComponent is an error that occurs when a non-final
	// component of a path is a regular file.
	ErrInvalidPathComponent = errors.New("invalid path component")

	// ErrSymlinkCycle is an error that occurs when more than
	// [schema.MaxSymlinkHops] symbolic links are followed during resolution.
	ErrSymlinkCycle = errors.New("symbolic link cycle detected")

	// ErrDirectoryNotEmpty is an error that occurs when rmdir is attempted on
	// a directory with entries other than "." and "..".
	ErrDirectoryNotEmpty = errors.New("directory not empty")

	// ErrDirectoryBusy is an error that occurs when rmdir is attempted on the
	// root or the current working directory.
	ErrDirectoryBusy = errors.New("directory is in use")

	// ErrUnsupportedLinkTarget is an error that occurs when a hard link to a
	// directory is attempted.
	ErrUnsupportedLinkTarget = errors.New("hard links to directories are not supported")

	// ErrTargetTooLong is an error that occurs when a symbolic link target is
	// longer than [schema.BlockSize].
	ErrTargetTooLong = errors.New("symbolic link target too long")

	// ErrInvalidFileDescriptor is an error that occurs when an operation is
	// given an unknown or already closed handle.
	ErrInvalidFileDescriptor = errors.New("invalid file descriptor")

	// ErrTooManyOpenFiles is an error that occurs when the open-file table is
	// at its [schema.MaxOpenFiles] capacity.
	ErrTooManyOpenFiles = errors.New("too many open files")

	// ErrInvalidOffset is an error that occurs when a seek offset is negative
	// or beyond the size of the file.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrInvalidSize is an error that occurs when a read, write or truncate
	// size violates its bounds.
	ErrInvalidSize = errors.New("invalid size")

	// ErrAccessDenied is an error that occurs when a read or write is
	// attempted through a handle whose access mode does not permit it.
	ErrAccessDenied = errors.New("access denied")
)

// PathError records a failed filesystem operation together with the path or
// handle it was invoked with. The wrapped error is always one of the sentinel
// errors of this package, so it can be tested with [errors.Is].
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

func newPathError(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}

func newHandleError(op string, fd int, err error) error {
	return &PathError{Op: op, Path: fmt.Sprintf("fd %d", fd), Err: err}
}

//nolint:gochecknoglobals
var errnos = []struct {
	err   error
	errno unix.Errno
}{
	{ErrPathNotFound, unix.ENOENT},
	{ErrPathAlreadyExists, unix.EEXIST},
	{ErrNotADirectory, unix.ENOTDIR},
	{ErrInvalidPathComponent, unix.ENOTDIR},
	{ErrNotARegularFile, unix.EINVAL},
	{ErrIsADirectory, unix.EISDIR},
	{ErrInvalidPath, unix.ENOENT},
	{ErrSymlinkCycle, unix.ELOOP},
	{ErrDirectoryNotEmpty, unix.ENOTEMPTY},
	{ErrDirectoryBusy, unix.EBUSY},
	{ErrUnsupportedLinkTarget, unix.EPERM},
	{ErrTargetTooLong, unix.ENAMETOOLONG},
	{ErrInvalidFileDescriptor, unix.EBADF},
	{ErrTooManyOpenFiles, unix.EMFILE},
	{ErrInvalidOffset, unix.EINVAL},
	{ErrInvalidSize, unix.EINVAL},
	{ErrAccessDenied, unix.EACCES},
}

// Errno returns the Unix error number corresponding to an error returned by
// the [Handler]. It returns 0 for nil and for errors not originating here.
func Errno(err error) unix.Errno {
	if err == nil {
		return 0
	}

	for _, e := range errnos {
		if errors.Is(err, e.err) {
			return e.errno
		}
	}

	return 0
}
