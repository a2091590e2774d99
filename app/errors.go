package app

import (
	"errors"
	"fmt"
)

var (
	// ErrPathUnavailable means the target directory is missing, unreadable
	// or not a directory. The model keeps its previous listing.
	ErrPathUnavailable = errors.New("path unavailable")
	// ErrRemovalFailed is reported per path by Remove.
	ErrRemovalFailed = errors.New("removal failed")
	// ErrRenameFailed means the OS rename call failed; the listing is unchanged.
	ErrRenameFailed = errors.New("rename failed")
	// ErrOutOfRange is returned for a row outside the current listing.
	ErrOutOfRange = errors.New("row out of range")
	// ErrIsDirectory is the cause of a refused directory removal.
	ErrIsDirectory = errors.New("is a directory")
)

// OpError describes a failed model command. Kind is one of the sentinel
// errors above and Err the underlying cause, so errors.Is matches either.
type OpError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
