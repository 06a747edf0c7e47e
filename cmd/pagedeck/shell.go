package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pagedeck/pagedeck/internal/config"
	"github.com/pagedeck/pagedeck/internal/document"
	"github.com/pagedeck/pagedeck/internal/save"
	"github.com/pagedeck/pagedeck/internal/session"
	"github.com/pagedeck/pagedeck/internal/source"
	"github.com/pagedeck/pagedeck/pkg/pagerange"
)

const usage = `commands:
  open PATH            open a document
  pages                list visible pages with rotation state
  remove SEL           remove the selected pages
  remove-except SEL    remove every page not selected
  remove-before N      remove all pages before page N
  remove-after N       remove all pages after page N
  rotate-right SEL     rotate the selected pages 90 degrees clockwise
  rotate-left SEL      rotate the selected pages 90 degrees counter-clockwise
  undo | redo          step through edit history
  zoom-in | zoom-out   step through the configured preview sizes
  save PATH            save the edited document (runs in the background)
  status               show document and save state
  close                close the current document
  quit                 exit

SEL is a 1-based page selection such as 3, 1-5, 2,4,7 or 6-.`

// shell is the interactive frontend to the edit engine. All document and
// session access happens on the goroutine running the event loop; stdin
// reading and save persistence run on their own goroutines and report
// back through channels.
type shell struct {
	cfg    *config.Config
	root   *slog.Logger
	logger *slog.Logger
	writer *source.Writer
	out    io.Writer
	sess   *session.Session
	zoom   int
}

func newShell(cfg *config.Config, logger *slog.Logger) *shell {
	return &shell{
		cfg:    cfg,
		root:   logger,
		logger: logger.With("system", "shell"),
		writer: source.NewWriter(logger),
	}
}

// run drives the controlling event loop until quit, EOF or interrupt.
func (s *shell) run(in io.Reader, out io.Writer) error {
	s.out = out

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	fmt.Fprintln(out, "pagedeck — type 'help' for commands")

	quitting := false
	for {
		var results <-chan save.Result
		if s.sess != nil {
			results = s.sess.Results()
		}

		select {
		case line, ok := <-lines:
			if !ok {
				quitting = true
				break
			}
			if s.handle(line) {
				quitting = true
			}
		case res := <-results:
			s.handleResult(res)
		case <-sigs:
			quitting = true
		}

		if quitting {
			if s.sess != nil && s.sess.Saving() {
				// Teardown is held back until the in-flight save
				// delivers its terminal signal.
				fmt.Fprintln(out, "waiting for the running save to finish...")
				s.handleResult(<-s.sess.Results())
			}
			return nil
		}
	}
}

// handle executes one command line; it returns true when the shell
// should exit.
func (s *shell) handle(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(s.out, usage)
	case "open":
		s.cmdOpen(args)
	case "pages", "ls":
		s.cmdPages()
	case "remove":
		s.edit(args, func(indices []int) error { return s.doc().RemovePages(indices) })
	case "remove-except":
		s.cmdRemoveExcept(args)
	case "remove-before":
		s.cmdRemoveBefore(args)
	case "remove-after":
		s.cmdRemoveAfter(args)
	case "rotate-right":
		s.edit(args, func(indices []int) error { return s.doc().RotatePagesRight(indices) })
	case "rotate-left":
		s.edit(args, func(indices []int) error { return s.doc().RotatePagesLeft(indices) })
	case "undo":
		s.cmdUndo()
	case "redo":
		s.cmdRedo()
	case "zoom-in":
		s.cmdZoom(1)
	case "zoom-out":
		s.cmdZoom(-1)
	case "save":
		s.cmdSave(args)
	case "status":
		s.cmdStatus()
	case "close":
		s.cmdClose()
	case "quit", "exit":
		if s.sess != nil {
			if err := s.sess.Close(); err != nil {
				fmt.Fprintf(s.out, "cannot quit: %v\n", err)
				return false
			}
			s.sess = nil
		}
		return true
	default:
		fmt.Fprintf(s.out, "unknown command %q — type 'help'\n", cmd)
	}

	return false
}

func (s *shell) cmdOpen(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: open PATH")
		return
	}
	if s.sess != nil {
		fmt.Fprintln(s.out, "a document is already open — 'close' it first")
		return
	}

	sess, err := session.Open(args[0], s.cfg.Storage.MaxOpenSizeBytes(), s.writer, s.root)
	if err != nil {
		s.logger.Error("open failed", "path", args[0], "error", err)
		fmt.Fprintf(s.out, "the selected file could not be opened: %v\n", err)
		return
	}

	s.sess = sess
	sess.Document().OnChange(s.onDocumentChanged)
	fmt.Fprintf(s.out, "opened %s (%d pages)\n", sess.Document().Name(), sess.Document().PageCount())
}

func (s *shell) cmdPages() {
	if !s.requireDocument() {
		return
	}

	for i, p := range s.doc().Pages() {
		if p.Rotation() != 0 {
			fmt.Fprintf(s.out, "%4d: source page %d, rotated %d°\n", i+1, p.SourceIndex(), p.Rotation())
		} else {
			fmt.Fprintf(s.out, "%4d: source page %d\n", i+1, p.SourceIndex())
		}
	}
}

// edit parses a selection argument and applies op over the resulting
// 0-based indices.
func (s *shell) edit(args []string, op func(indices []int) error) {
	if !s.requireEditable() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: COMMAND SEL")
		return
	}

	pages, err := pagerange.Parse(args[0], s.doc().PageCount())
	if err != nil {
		fmt.Fprintf(s.out, "bad selection: %v\n", err)
		return
	}

	if err := op(toIndices(pages)); err != nil {
		fmt.Fprintf(s.out, "edit failed: %v\n", err)
	}
}

func (s *shell) cmdRemoveExcept(args []string) {
	if !s.requireEditable() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: remove-except SEL")
		return
	}

	pages, err := pagerange.Parse(args[0], s.doc().PageCount())
	if err != nil {
		fmt.Fprintf(s.out, "bad selection: %v\n", err)
		return
	}

	rest := pagerange.Except(pages, s.doc().PageCount())
	if err := s.doc().RemovePages(toIndices(rest)); err != nil {
		fmt.Fprintf(s.out, "edit failed: %v\n", err)
	}
}

func (s *shell) cmdRemoveBefore(args []string) {
	if !s.requireEditable() {
		return
	}

	page, ok := s.parsePage(args)
	if !ok {
		return
	}

	if err := s.doc().RemovePageRange(0, page-2); err != nil {
		fmt.Fprintf(s.out, "edit failed: %v\n", err)
	}
}

func (s *shell) cmdRemoveAfter(args []string) {
	if !s.requireEditable() {
		return
	}

	page, ok := s.parsePage(args)
	if !ok {
		return
	}

	if err := s.doc().RemovePageRange(page, s.doc().PageCount()-1); err != nil {
		fmt.Fprintf(s.out, "edit failed: %v\n", err)
	}
}

func (s *shell) cmdUndo() {
	if !s.requireEditable() {
		return
	}
	if !s.doc().CanUndo() {
		fmt.Fprintln(s.out, "nothing to undo")
		return
	}
	if err := s.doc().Undo(); err != nil {
		fmt.Fprintf(s.out, "undo failed: %v\n", err)
	}
}

func (s *shell) cmdRedo() {
	if !s.requireEditable() {
		return
	}
	if !s.doc().CanRedo() {
		fmt.Fprintln(s.out, "nothing to redo")
		return
	}
	if err := s.doc().Redo(); err != nil {
		fmt.Fprintf(s.out, "redo failed: %v\n", err)
	}
}

// cmdZoom steps through the configured preview sizes. The shell has no
// thumbnail view; the active size is carried for frontends that do.
func (s *shell) cmdZoom(step int) {
	levels := s.cfg.Editor.ZoomLevels
	next := s.zoom + step
	if next < 0 || next >= len(levels) {
		fmt.Fprintf(s.out, "zoom stays at %dpx\n", levels[s.zoom])
		return
	}

	s.zoom = next
	fmt.Fprintf(s.out, "zoom set to %dpx\n", levels[s.zoom])
}

func (s *shell) cmdSave(args []string) {
	if !s.requireDocument() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: save PATH")
		return
	}

	dest := args[0]
	if dest == filepath.Base(dest) {
		dest = filepath.Join(s.cfg.Storage.OutputDir, dest)
	}

	id, err := s.sess.RequestSave(context.Background(), dest)
	if err != nil {
		fmt.Fprintf(s.out, "save refused: %v\n", err)
		return
	}

	fmt.Fprintf(s.out, "saving to %s (%s)...\n", dest, shortID(id.String()))
}

func (s *shell) cmdStatus() {
	if s.sess == nil {
		fmt.Fprintln(s.out, "no document open")
		return
	}

	doc := s.doc()
	fmt.Fprintf(s.out, "document: %s\n", doc.Name())
	fmt.Fprintf(s.out, "pages:    %d\n", doc.PageCount())
	fmt.Fprintf(s.out, "undo:     %v\n", doc.CanUndo())
	fmt.Fprintf(s.out, "redo:     %v\n", doc.CanRedo())
	fmt.Fprintf(s.out, "saving:   %v\n", s.sess.Saving())
	fmt.Fprintf(s.out, "zoom:     %dpx\n", s.cfg.Editor.ZoomLevels[s.zoom])
}

func (s *shell) cmdClose() {
	if s.sess == nil {
		fmt.Fprintln(s.out, "no document open")
		return
	}

	if err := s.sess.Close(); err != nil {
		fmt.Fprintf(s.out, "cannot close: %v\n", err)
		return
	}

	fmt.Fprintf(s.out, "closed %s\n", s.doc().Name())
	s.sess = nil
}

func (s *shell) handleResult(res save.Result) {
	if res.Err != nil {
		fmt.Fprintf(s.out, "save %s failed: %v\n", shortID(res.ID.String()), res.Err)
		return
	}
	fmt.Fprintf(s.out, "saved %s in %s\n", res.Destination, res.Duration.Round(time.Millisecond))
}

func (s *shell) onDocumentChanged() {
	s.logger.Debug("document changed",
		"pages", s.doc().PageCount(),
		"can_undo", s.doc().CanUndo(),
		"can_redo", s.doc().CanRedo())
}

func (s *shell) doc() *document.Document {
	return s.sess.Document()
}

func (s *shell) requireDocument() bool {
	if s.sess == nil {
		fmt.Fprintln(s.out, "no document open — use 'open PATH'")
		return false
	}
	return true
}

// requireEditable refuses edits while a save is in flight, mirroring the
// disabled editing actions of a busy editor.
func (s *shell) requireEditable() bool {
	if !s.requireDocument() {
		return false
	}
	if s.sess.Saving() {
		fmt.Fprintln(s.out, "a save is in progress — try again once it finishes")
		return false
	}
	return true
}

func (s *shell) parsePage(args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: COMMAND N")
		return 0, false
	}

	page, err := strconv.Atoi(args[0])
	if err != nil || page < 1 || page > s.doc().PageCount() {
		fmt.Fprintf(s.out, "page must be within [1-%d]\n", s.doc().PageCount())
		return 0, false
	}

	return page, true
}

// toIndices converts 1-based page numbers to 0-based sequence indices.
func toIndices(pages []int) []int {
	indices := make([]int, len(pages))
	for i, p := range pages {
		indices[i] = p - 1
	}
	return indices
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
