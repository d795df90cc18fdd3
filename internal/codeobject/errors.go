package codeobject

import (
	"errors"
	"fmt"
)

// Sentinel errors for tree construction.
var (
	// ErrMalformedDeclaration marks a declaration missing required data
	// (name, path, or a known kind). The declaration is skipped.
	ErrMalformedDeclaration = errors.New("malformed declaration")

	// ErrOrphanDeclaration marks a declaration whose parent path does not
	// resolve to a namespace in the same run. The declaration and its
	// descendants are skipped.
	ErrOrphanDeclaration = errors.New("orphan declaration")

	// ErrConflictingKinds is returned by Build when two declarations share a
	// path but disagree on kind. It aborts the run.
	ErrConflictingKinds = errors.New("conflicting kinds for path")
)

// AdapterError describes a declaration that could not be turned into a
// CodeObject.
type AdapterError struct {
	// Path is the declaration path, or its name if the path was missing.
	Path string

	// Location is the first reported location, if any.
	Location Location

	// Reason describes what was wrong.
	Reason string

	// Err is one of the sentinel errors above.
	Err error
}

func (e *AdapterError) Error() string {
	where := e.Path
	if e.Location.File != "" {
		where = fmt.Sprintf("%s (%s)", e.Path, e.Location)
	}
	return fmt.Sprintf("%s: %s: %s", where, e.Err, e.Reason)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
