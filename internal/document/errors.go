// Package document implements the in-memory page edit engine: an ordered,
// mutable page sequence governed by a reversible command history with
// linear undo/redo semantics.
package document

import "errors"

// Domain errors for document editing.
var (
	ErrNoHistory      = errors.New("no history entry available")
	ErrPageOutOfRange = errors.New("page index out of range")
	ErrNoPages        = errors.New("document has no pages")
)
