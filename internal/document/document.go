package document

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
)

// Source is the opaque handle to the underlying document content. The
// engine never inspects the content itself; persistence reads it back
// through the path at save time.
type Source interface {
	Path() string
	PageCount() int
}

// Document owns the ordered page sequence and its command history. It is
// accessed only from the controlling goroutine; save workers operate on
// immutable snapshots instead, so no locking is required here.
type Document struct {
	id        uuid.UUID
	source    Source
	pages     []*Page
	history   *History
	observers []func()
}

// New constructs a document over an opened source. Construction is
// all-or-nothing: a source reporting no pages is rejected.
func New(src Source) (*Document, error) {
	count := src.PageCount()
	if count < 1 {
		return nil, ErrNoPages
	}

	pages := make([]*Page, count)
	for i := range pages {
		pages[i] = newPage(i + 1)
	}

	return &Document{
		id:      uuid.New(),
		source:  src,
		pages:   pages,
		history: NewHistory(),
	}, nil
}

// ID returns the document's session-unique identity.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Name returns the base name of the underlying source file.
func (d *Document) Name() string {
	return filepath.Base(d.source.Path())
}

// Pages returns a read-only projection of the current visible sequence.
// Callers observe page state through it but cannot mutate the sequence.
func (d *Document) Pages() []*Page {
	return slices.Clone(d.pages)
}

// PageCount returns the number of visible pages.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// OnChange registers fn to run after every successful mutation of the
// page sequence or history. Callbacks run synchronously on the
// controlling goroutine and carry no payload; observers re-query
// Pages, CanUndo and CanRedo.
func (d *Document) OnChange(fn func()) {
	d.observers = append(d.observers, fn)
}

func (d *Document) notify() {
	for _, fn := range d.observers {
		fn()
	}
}

// RemovePages removes the pages at the given visible indices, preserving
// the relative order of survivors. An empty index set is a silent no-op
// and records no history entry.
func (d *Document) RemovePages(indices []int) error {
	if len(indices) == 0 {
		return nil
	}
	if err := d.checkIndices(indices); err != nil {
		return err
	}

	d.history.Execute(newRemovePagesCommand(d, indices))
	d.notify()

	return nil
}

// RemovePageRange removes the contiguous inclusive range [start, end] of
// visible indices. A range with end < start is a silent no-op.
func (d *Document) RemovePageRange(start, end int) error {
	if end < start {
		return nil
	}
	if start < 0 || end >= len(d.pages) {
		return fmt.Errorf("%w: range [%d, %d] outside [0, %d)", ErrPageOutOfRange, start, end, len(d.pages))
	}

	d.history.Execute(newRemovePageRangeCommand(d, start, end))
	d.notify()

	return nil
}

// RotatePagesRight rotates the targeted pages 90 degrees clockwise.
func (d *Document) RotatePagesRight(indices []int) error {
	return d.rotatePages(indices, 90)
}

// RotatePagesLeft rotates the targeted pages 90 degrees counter-clockwise.
func (d *Document) RotatePagesLeft(indices []int) error {
	return d.rotatePages(indices, -90)
}

func (d *Document) rotatePages(indices []int, delta int) error {
	if len(indices) == 0 {
		return nil
	}
	if err := d.checkIndices(indices); err != nil {
		return err
	}

	d.history.Execute(newRotatePagesCommand(d, indices, delta))
	d.notify()

	return nil
}

// Undo reverses the most recent edit. ErrNoHistory indicates a caller
// contract violation: the operation should not be offered while CanUndo
// reports false.
func (d *Document) Undo() error {
	if err := d.history.Undo(); err != nil {
		return err
	}
	d.notify()

	return nil
}

// Redo re-applies the most recently undone edit. ErrNoHistory indicates
// a caller contract violation, as with Undo.
func (d *Document) Redo() error {
	if err := d.history.Redo(); err != nil {
		return err
	}
	d.notify()

	return nil
}

// CanUndo reports whether an edit is available to reverse.
func (d *Document) CanUndo() bool {
	return d.history.CanUndo()
}

// CanRedo reports whether an undone edit is available to re-apply.
func (d *Document) CanRedo() bool {
	return d.history.CanRedo()
}

func (d *Document) checkIndices(indices []int) error {
	for _, idx := range indices {
		if idx < 0 || idx >= len(d.pages) {
			return fmt.Errorf("%w: index %d outside [0, %d)", ErrPageOutOfRange, idx, len(d.pages))
		}
	}
	return nil
}
