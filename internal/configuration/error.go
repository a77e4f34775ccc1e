package configuration

import "errors"

// ErrInvalidWorkers is an error that occurs when a configured worker count is
// not a positive integer.
var ErrInvalidWorkers = errors.New("invalid worker count")
