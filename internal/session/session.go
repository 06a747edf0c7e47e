// Package session ties one open document to its save coordinator and
// enforces the teardown contract: a session cannot be closed while a
// save referencing its document is in flight.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pagedeck/pagedeck/internal/document"
	"github.com/pagedeck/pagedeck/internal/save"
	"github.com/pagedeck/pagedeck/internal/source"
)

// Session lifecycle errors.
var (
	ErrSaveInProgress = errors.New("session cannot close while a save is in progress")
	ErrClosed         = errors.New("session is closed")
)

// Session owns one document and one save coordinator for the lifetime of
// an editing run. Like the document it wraps, it is driven from the
// controlling goroutine only.
type Session struct {
	doc    *document.Document
	coord  *save.Coordinator
	logger *slog.Logger
	closed bool
}

// Open validates and loads the source at path and starts an editing
// session over it. maxOpenSize bounds the accepted source size in bytes;
// zero disables the limit.
func Open(path string, maxOpenSize int64, writer save.Writer, logger *slog.Logger) (*Session, error) {
	src, err := source.Open(path, maxOpenSize)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	doc, err := document.New(src)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return New(doc, writer, logger), nil
}

// New starts a session over an already constructed document.
func New(doc *document.Document, writer save.Writer, logger *slog.Logger) *Session {
	logger = logger.With("system", "session", "document", doc.Name())
	logger.Info("session opened", "pages", doc.PageCount())

	return &Session{
		doc:    doc,
		coord:  save.New(writer, logger),
		logger: logger,
	}
}

// Document returns the session's document.
func (s *Session) Document() *document.Document {
	return s.doc
}

// RequestSave schedules persistence of the document's current state to
// dest. Fails with save.ErrAlreadySaving while a save is in flight and
// ErrClosed once the session has been closed.
func (s *Session) RequestSave(ctx context.Context, dest string) (uuid.UUID, error) {
	if s.closed {
		return uuid.Nil, ErrClosed
	}
	return s.coord.RequestSave(ctx, s.doc, dest)
}

// Results delivers the terminal signal of each accepted save.
func (s *Session) Results() <-chan save.Result {
	return s.coord.Results()
}

// Saving reports whether a save is in flight.
func (s *Session) Saving() bool {
	return s.coord.Saving()
}

// Close ends the session. It is refused with ErrSaveInProgress while a
// save is in flight so the document outlives any worker that references
// its snapshot source. Closing an already closed session fails with
// ErrClosed.
func (s *Session) Close() error {
	if s.closed {
		return ErrClosed
	}
	if s.coord.Saving() {
		return ErrSaveInProgress
	}

	s.closed = true
	s.logger.Info("session closed")

	return nil
}
