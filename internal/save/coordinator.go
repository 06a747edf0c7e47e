// Package save coordinates asynchronous persistence of document
// snapshots. At most one save per coordinator is in flight at a time;
// completion is reported exactly once through a result channel drained
// on the controlling goroutine, never through a raw cross-goroutine
// callback.
package save

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pagedeck/pagedeck/internal/document"
)

// ErrAlreadySaving is returned when a save is requested while another
// save for the same coordinator is still in flight.
var ErrAlreadySaving = errors.New("a save is already in progress")

// Phase is the coordinator's observable state.
type Phase string

// Coordinator phases.
const (
	PhaseIdle   Phase = "idle"
	PhaseSaving Phase = "saving"
)

// Writer persists a snapshot to a destination path. Implementations must
// be safe for use from a worker goroutine.
type Writer interface {
	WriteSnapshot(ctx context.Context, snap document.Snapshot, dest string) error
}

// Result is the one-shot terminal signal of a save. A nil Err means the
// snapshot was fully written to Destination.
type Result struct {
	ID          uuid.UUID
	DocumentID  uuid.UUID
	Destination string
	Duration    time.Duration
	Err         error
}

// Coordinator schedules snapshot persistence on worker goroutines while
// the controlling goroutine keeps editing. The phase transitions
// idle -> saving -> idle; while saving, further save requests are
// refused and session teardown must be held off.
type Coordinator struct {
	writer  Writer
	logger  *slog.Logger
	results chan Result

	mu    sync.Mutex
	phase Phase
}

// New creates an idle coordinator persisting through writer.
func New(writer Writer, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		writer:  writer,
		logger:  logger.With("system", "save"),
		results: make(chan Result, 1),
		phase:   PhaseIdle,
	}
}

// Phase returns the coordinator's current phase.
func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Saving reports whether a save is in flight.
func (c *Coordinator) Saving() bool {
	return c.Phase() == PhaseSaving
}

// Results delivers exactly one Result per accepted save request. The
// controlling goroutine must drain it; worker goroutines never invoke
// caller code directly.
func (c *Coordinator) Results() <-chan Result {
	return c.results
}

// RequestSave snapshots the document and schedules persistence to dest
// on a worker goroutine. It fails fast with ErrAlreadySaving while a
// save is in flight. Edits made after the snapshot is taken do not
// affect the scheduled save; there is no mid-flight cancellation.
func (c *Coordinator) RequestSave(ctx context.Context, doc *document.Document, dest string) (uuid.UUID, error) {
	c.mu.Lock()
	if c.phase == PhaseSaving {
		c.mu.Unlock()
		return uuid.Nil, ErrAlreadySaving
	}
	c.phase = PhaseSaving
	c.mu.Unlock()

	id := uuid.New()
	snap := doc.Snapshot()

	c.logger.Info("save requested",
		"save_id", id,
		"document", doc.Name(),
		"destination", dest,
		"pages", len(snap.Pages))

	go c.run(ctx, id, snap, dest)

	return id, nil
}

// run performs the blocking persistence work. The result is sent before
// the phase flips back to idle, so a teardown check observes the save as
// in flight until its terminal signal has been produced.
func (c *Coordinator) run(ctx context.Context, id uuid.UUID, snap document.Snapshot, dest string) {
	start := time.Now()
	err := c.writer.WriteSnapshot(ctx, snap, dest)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("save failed",
			"save_id", id,
			"destination", dest,
			"duration", duration,
			"error", err)
	} else {
		c.logger.Info("save succeeded",
			"save_id", id,
			"destination", dest,
			"duration", duration)
	}

	c.results <- Result{
		ID:          id,
		DocumentID:  snap.DocumentID,
		Destination: dest,
		Duration:    duration,
		Err:         err,
	}

	c.mu.Lock()
	c.phase = PhaseIdle
	c.mu.Unlock()
}
