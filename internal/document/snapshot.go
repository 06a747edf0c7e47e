package document

import (
	"time"

	"github.com/google/uuid"
)

// PageRef records one page of a snapshot: the 1-based source page it
// refers to and the rotation to persist it with.
type PageRef struct {
	SourceIndex int
	Rotation    int
}

// Snapshot is an immutable copy of the visible page sequence taken at
// save-request time. It shares no mutable state with the live document,
// so a save worker can read it while edits continue on the controlling
// goroutine.
type Snapshot struct {
	DocumentID uuid.UUID
	SourcePath string
	Pages      []PageRef
	TakenAt    time.Time
}

// Snapshot captures the current visible sequence with per-page rotation
// state. Removed pages are excluded.
func (d *Document) Snapshot() Snapshot {
	refs := make([]PageRef, len(d.pages))
	for i, p := range d.pages {
		refs[i] = PageRef{SourceIndex: p.sourceIndex, Rotation: p.rotation}
	}

	return Snapshot{
		DocumentID: d.id,
		SourcePath: d.source.Path(),
		Pages:      refs,
		TakenAt:    time.Now(),
	}
}
