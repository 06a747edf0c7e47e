package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pagedeck/pagedeck/internal/document"
)

// Writer materializes document snapshots into destination files. It is
// safe for use from save worker goroutines: beyond its configuration it
// holds no mutable state.
type Writer struct {
	conf   *model.Configuration
	logger *slog.Logger
}

// NewWriter creates a snapshot writer with default pdfcpu configuration.
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{
		conf:   model.NewDefaultConfiguration(),
		logger: logger.With("system", "writer"),
	}
}

// WriteSnapshot persists the snapshot's page sequence, with rotations
// applied, to dest. The source file is re-read at save time; the
// destination is written atomically via a temp file rename.
func (w *Writer) WriteSnapshot(ctx context.Context, snap document.Snapshot, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(snap.Pages) == 0 {
		return ErrEmptySnapshot
	}

	data, err := os.ReadFile(snap.SourcePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}

	collected, err := w.collect(data, snap.Pages)
	if err != nil {
		return fmt.Errorf("collect pages: %w", err)
	}

	rotated, err := w.rotate(collected, snap.Pages)
	if err != nil {
		return fmt.Errorf("rotate pages: %w", err)
	}

	if err := writeAtomic(dest, rotated); err != nil {
		return err
	}

	w.logger.Info("snapshot written",
		"document_id", snap.DocumentID,
		"destination", dest,
		"pages", len(snap.Pages))

	return nil
}

// collect assembles the snapshot's source pages in sequence order.
func (w *Writer) collect(data []byte, pages []document.PageRef) ([]byte, error) {
	selection := make([]string, len(pages))
	for i, p := range pages {
		selection[i] = strconv.Itoa(p.SourceIndex)
	}

	var buf bytes.Buffer
	if err := api.Collect(bytes.NewReader(data), &buf, selection, w.conf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// rotate applies each distinct nonzero rotation to its group of pages.
// Positions refer to the collected document, where snapshot page i sits
// at position i+1.
func (w *Writer) rotate(data []byte, pages []document.PageRef) ([]byte, error) {
	groups := make(map[int][]string)
	for i, p := range pages {
		if p.Rotation != 0 {
			groups[p.Rotation] = append(groups[p.Rotation], strconv.Itoa(i+1))
		}
	}

	for _, rotation := range []int{90, 180, 270} {
		selection, ok := groups[rotation]
		if !ok {
			continue
		}

		var buf bytes.Buffer
		if err := api.Rotate(bytes.NewReader(data), &buf, rotation, selection, w.conf); err != nil {
			return nil, err
		}
		data = buf.Bytes()
	}

	return data, nil
}

func writeAtomic(dest string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrDestinationUnwritable, err)
	}

	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrDestinationUnwritable, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrDestinationUnwritable, err)
	}

	return nil
}
