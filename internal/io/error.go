package io

import "errors"

var (
	// ErrHashMismatch is an error that occurs when there is a source/destination hash
	// mismatch after a copy, meaning the destination does not hold the source's data.
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrRenameExists is an error that occurs when the intermediate file is to be renamed
	// to its final name, but that final name already exists.
	ErrRenameExists = errors.New("rename destination already exists")

	// ErrNotRegular is an error that occurs when the source of a copy is not a
	// regular file.
	ErrNotRegular = errors.New("not a regular file")
)
