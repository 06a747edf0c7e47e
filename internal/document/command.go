package document

import (
	"slices"
	"sort"
)

// Command is a reversible edit operation over a document's page sequence.
// Apply mutates the sequence; Reverse restores the exact prior state and
// may only be called after Apply. Commands are immutable once constructed.
type Command interface {
	Apply()
	Reverse()
}

// removedPage pairs a removed page with its absolute position in the
// sequence at removal time, so Reverse can rebuild the exact order.
type removedPage struct {
	page     *Page
	position int
}

type removePagesCommand struct {
	doc     *Document
	indices []int
	removed []removedPage
}

// newRemovePagesCommand targets the given visible indices, which may be
// non-contiguous and unordered. Duplicates are collapsed.
func newRemovePagesCommand(doc *Document, indices []int) *removePagesCommand {
	sorted := slices.Clone(indices)
	sort.Ints(sorted)
	sorted = slices.Compact(sorted)

	return &removePagesCommand{doc: doc, indices: sorted}
}

func (c *removePagesCommand) Apply() {
	c.removed = make([]removedPage, 0, len(c.indices))

	// Walk from highest index to lowest so earlier removals do not
	// shift positions still pending removal.
	for i := len(c.indices) - 1; i >= 0; i-- {
		idx := c.indices[i]
		page := c.doc.pages[idx]
		page.markRemoved()
		c.doc.pages = slices.Delete(c.doc.pages, idx, idx+1)
		c.removed = append(c.removed, removedPage{page: page, position: idx})
	}
}

func (c *removePagesCommand) Reverse() {
	// Reinsert lowest position first; recorded absolute positions then
	// land every page back in its original slot.
	for i := len(c.removed) - 1; i >= 0; i-- {
		r := c.removed[i]
		r.page.markRestored()
		c.doc.pages = slices.Insert(c.doc.pages, r.position, r.page)
	}
}

type removePageRangeCommand struct {
	*removePagesCommand
}

// newRemovePageRangeCommand targets the contiguous inclusive range
// [start, end] of visible indices. An inverted range yields a command
// that removes nothing.
func newRemovePageRangeCommand(doc *Document, start, end int) *removePageRangeCommand {
	var indices []int
	for i := start; i <= end; i++ {
		indices = append(indices, i)
	}
	return &removePageRangeCommand{newRemovePagesCommand(doc, indices)}
}

type rotatePagesCommand struct {
	pages []*Page
	delta int
}

// newRotatePagesCommand resolves the target indices to pages at
// construction time; rotation never reorders the sequence, so the same
// pages are rotated back on Reverse regardless of later history state.
func newRotatePagesCommand(doc *Document, indices []int, delta int) *rotatePagesCommand {
	pages := make([]*Page, len(indices))
	for i, idx := range indices {
		pages[i] = doc.pages[idx]
	}
	return &rotatePagesCommand{pages: pages, delta: delta}
}

func (c *rotatePagesCommand) Apply() {
	for _, p := range c.pages {
		p.rotate(c.delta)
	}
}

func (c *rotatePagesCommand) Reverse() {
	for _, p := range c.pages {
		p.rotate(-c.delta)
	}
}
