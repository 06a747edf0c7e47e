package document_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pagedeck/pagedeck/internal/document"
)

type fakeSource struct {
	path  string
	pages int
}

func (s fakeSource) Path() string   { return s.path }
func (s fakeSource) PageCount() int { return s.pages }

func open(t *testing.T, pages int) *document.Document {
	t.Helper()

	doc, err := document.New(fakeSource{path: "/docs/report.pdf", pages: pages})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return doc
}

// pageState flattens a page for comparison.
type pageState struct {
	Source   int
	Rotation int
	Removed  bool
}

func states(doc *document.Document) []pageState {
	pages := doc.Pages()
	out := make([]pageState, len(pages))
	for i, p := range pages {
		out[i] = pageState{Source: p.SourceIndex(), Rotation: p.Rotation(), Removed: p.IsRemoved()}
	}
	return out
}

func TestNew(t *testing.T) {
	doc := open(t, 3)

	if got := doc.PageCount(); got != 3 {
		t.Errorf("PageCount() = %d, want 3", got)
	}
	if got := doc.Name(); got != "report.pdf" {
		t.Errorf("Name() = %q, want %q", got, "report.pdf")
	}
	if doc.CanUndo() || doc.CanRedo() {
		t.Error("new document reports available history")
	}

	want := []pageState{{Source: 1}, {Source: 2}, {Source: 3}}
	if diff := cmp.Diff(want, states(doc)); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_NoPages(t *testing.T) {
	if _, err := document.New(fakeSource{path: "x.pdf", pages: 0}); !errors.Is(err, document.ErrNoPages) {
		t.Errorf("New() = %v, want ErrNoPages", err)
	}
}

func TestRemovePages(t *testing.T) {
	doc := open(t, 5)

	if err := doc.RemovePages([]int{1, 3}); err != nil {
		t.Fatalf("RemovePages() failed: %v", err)
	}

	want := []pageState{{Source: 1}, {Source: 3}, {Source: 5}}
	if diff := cmp.Diff(want, states(doc)); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}

	if err := doc.Undo(); err != nil {
		t.Fatalf("Undo() failed: %v", err)
	}

	want = []pageState{{Source: 1}, {Source: 2}, {Source: 3}, {Source: 4}, {Source: 5}}
	if diff := cmp.Diff(want, states(doc)); diff != "" {
		t.Errorf("pages after undo mismatch (-want +got):\n%s", diff)
	}
}

func TestRemovePages_EmptyIsNoOp(t *testing.T) {
	doc := open(t, 3)

	if err := doc.RemovePages(nil); err != nil {
		t.Fatalf("RemovePages(nil) failed: %v", err)
	}
	if doc.CanUndo() {
		t.Error("empty removal produced a history entry")
	}
}

func TestRemovePages_OutOfRange(t *testing.T) {
	doc := open(t, 3)

	for _, indices := range [][]int{{-1}, {3}, {0, 7}} {
		if err := doc.RemovePages(indices); !errors.Is(err, document.ErrPageOutOfRange) {
			t.Errorf("RemovePages(%v) = %v, want ErrPageOutOfRange", indices, err)
		}
	}
	if doc.CanUndo() {
		t.Error("rejected removal produced a history entry")
	}
}

func TestRemovePageRange(t *testing.T) {
	doc := open(t, 5)

	if err := doc.RemovePageRange(2, 4); err != nil {
		t.Fatalf("RemovePageRange() failed: %v", err)
	}

	want := []pageState{{Source: 1}, {Source: 2}}
	if diff := cmp.Diff(want, states(doc)); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestRemovePageRange_InvertedIsNoOp(t *testing.T) {
	doc := open(t, 5)

	if err := doc.RemovePageRange(3, 1); err != nil {
		t.Fatalf("RemovePageRange(3, 1) failed: %v", err)
	}
	if doc.CanUndo() {
		t.Error("inverted range produced a history entry")
	}
}

func TestRemovePageRange_OutOfRange(t *testing.T) {
	doc := open(t, 5)

	if err := doc.RemovePageRange(-1, 2); !errors.Is(err, document.ErrPageOutOfRange) {
		t.Errorf("RemovePageRange(-1, 2) = %v, want ErrPageOutOfRange", err)
	}
	if err := doc.RemovePageRange(2, 5); !errors.Is(err, document.ErrPageOutOfRange) {
		t.Errorf("RemovePageRange(2, 5) = %v, want ErrPageOutOfRange", err)
	}
}

func TestRotateRightThenLeftIsNoOp(t *testing.T) {
	doc := open(t, 4)

	if err := doc.RotatePagesRight([]int{0, 2}); err != nil {
		t.Fatalf("RotatePagesRight() failed: %v", err)
	}
	if err := doc.RotatePagesLeft([]int{2, 0}); err != nil {
		t.Fatalf("RotatePagesLeft() failed: %v", err)
	}

	for _, p := range doc.Pages() {
		if p.Rotation() != 0 {
			t.Errorf("page %d rotation = %d, want 0", p.SourceIndex(), p.Rotation())
		}
	}
}

func TestUndoToExhaustionRestoresOriginal(t *testing.T) {
	doc := open(t, 8)
	original := states(doc)

	edits := []func() error{
		func() error { return doc.RotatePagesRight([]int{0, 1, 2}) },
		func() error { return doc.RemovePages([]int{1, 4, 6}) },
		func() error { return doc.RotatePagesLeft([]int{0}) },
		func() error { return doc.RemovePageRange(0, 1) },
		func() error { return doc.RotatePagesRight([]int{0, 1, 2}) },
		func() error { return doc.RemovePages([]int{2}) },
	}
	for i, edit := range edits {
		if err := edit(); err != nil {
			t.Fatalf("edit %d failed: %v", i, err)
		}
	}

	for doc.CanUndo() {
		if err := doc.Undo(); err != nil {
			t.Fatalf("Undo() failed: %v", err)
		}
	}

	if diff := cmp.Diff(original, states(doc)); diff != "" {
		t.Errorf("state after full undo mismatch (-want +got):\n%s", diff)
	}
}

func TestRedoReplaysEdits(t *testing.T) {
	doc := open(t, 5)

	if err := doc.RemovePages([]int{0}); err != nil {
		t.Fatalf("RemovePages() failed: %v", err)
	}
	if err := doc.RotatePagesRight([]int{0}); err != nil {
		t.Fatalf("RotatePagesRight() failed: %v", err)
	}
	edited := states(doc)

	if err := doc.Undo(); err != nil {
		t.Fatalf("Undo() failed: %v", err)
	}
	if err := doc.Undo(); err != nil {
		t.Fatalf("Undo() failed: %v", err)
	}

	if err := doc.Redo(); err != nil {
		t.Fatalf("Redo() failed: %v", err)
	}
	if err := doc.Redo(); err != nil {
		t.Fatalf("Redo() failed: %v", err)
	}

	if diff := cmp.Diff(edited, states(doc)); diff != "" {
		t.Errorf("state after redo mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteAfterUndoDiscardsRedo(t *testing.T) {
	doc := open(t, 5)

	if err := doc.RemovePages([]int{0}); err != nil {
		t.Fatalf("RemovePages() failed: %v", err)
	}
	if err := doc.Undo(); err != nil {
		t.Fatalf("Undo() failed: %v", err)
	}
	if !doc.CanRedo() {
		t.Fatal("CanRedo() = false after Undo")
	}

	if err := doc.RotatePagesRight([]int{1}); err != nil {
		t.Fatalf("RotatePagesRight() failed: %v", err)
	}

	if doc.CanRedo() {
		t.Error("CanRedo() = true after new edit")
	}
	if err := doc.Redo(); !errors.Is(err, document.ErrNoHistory) {
		t.Errorf("Redo() = %v, want ErrNoHistory", err)
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	doc := open(t, 2)

	if err := doc.Undo(); !errors.Is(err, document.ErrNoHistory) {
		t.Errorf("Undo() = %v, want ErrNoHistory", err)
	}
}

func TestOnChange(t *testing.T) {
	doc := open(t, 5)

	notified := 0
	doc.OnChange(func() { notified++ })

	if err := doc.RemovePages([]int{0}); err != nil {
		t.Fatalf("RemovePages() failed: %v", err)
	}
	if notified != 1 {
		t.Errorf("notifications = %d, want 1", notified)
	}

	if err := doc.Undo(); err != nil {
		t.Fatalf("Undo() failed: %v", err)
	}
	if err := doc.Redo(); err != nil {
		t.Fatalf("Redo() failed: %v", err)
	}
	if notified != 3 {
		t.Errorf("notifications = %d, want 3", notified)
	}

	// No-ops and rejected edits notify nothing.
	if err := doc.RemovePages(nil); err != nil {
		t.Fatalf("RemovePages(nil) failed: %v", err)
	}
	if err := doc.RemovePages([]int{99}); err == nil {
		t.Fatal("RemovePages([]int{99}) succeeded, want error")
	}
	if notified != 3 {
		t.Errorf("notifications = %d, want 3", notified)
	}
}

func TestPagesIsDefensiveCopy(t *testing.T) {
	doc := open(t, 3)

	view := doc.Pages()
	view[0], view[1] = view[1], view[0]

	want := []pageState{{Source: 1}, {Source: 2}, {Source: 3}}
	if diff := cmp.Diff(want, states(doc)); diff != "" {
		t.Errorf("mutating the view changed the document (-want +got):\n%s", diff)
	}
}

func TestSnapshot(t *testing.T) {
	doc := open(t, 5)

	if err := doc.RemovePages([]int{1}); err != nil {
		t.Fatalf("RemovePages() failed: %v", err)
	}
	if err := doc.RotatePagesRight([]int{0}); err != nil {
		t.Fatalf("RotatePagesRight() failed: %v", err)
	}

	snap := doc.Snapshot()

	if snap.DocumentID != doc.ID() {
		t.Errorf("DocumentID = %v, want %v", snap.DocumentID, doc.ID())
	}
	if snap.SourcePath != "/docs/report.pdf" {
		t.Errorf("SourcePath = %q, want %q", snap.SourcePath, "/docs/report.pdf")
	}

	want := []document.PageRef{
		{SourceIndex: 1, Rotation: 90},
		{SourceIndex: 3},
		{SourceIndex: 4},
		{SourceIndex: 5},
	}
	if diff := cmp.Diff(want, snap.Pages); diff != "" {
		t.Errorf("snapshot pages mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotUnaffectedByLaterEdits(t *testing.T) {
	doc := open(t, 5)

	snap := doc.Snapshot()

	if err := doc.RemovePageRange(0, 3); err != nil {
		t.Fatalf("RemovePageRange() failed: %v", err)
	}
	if err := doc.RotatePagesRight([]int{0}); err != nil {
		t.Fatalf("RotatePagesRight() failed: %v", err)
	}

	want := []document.PageRef{
		{SourceIndex: 1}, {SourceIndex: 2}, {SourceIndex: 3},
		{SourceIndex: 4}, {SourceIndex: 5},
	}
	if diff := cmp.Diff(want, snap.Pages); diff != "" {
		t.Errorf("snapshot changed after later edits (-want +got):\n%s", diff)
	}
}
