package document

// History tracks applied and undone commands, providing linear undo/redo
// semantics: executing a new command discards all redo entries.
type History struct {
	applied []Command
	undone  []Command
}

// NewHistory creates an empty command history.
func NewHistory() *History {
	return &History{}
}

// Execute applies the command and records it, invalidating redo history.
func (h *History) Execute(cmd Command) {
	cmd.Apply()
	h.applied = append(h.applied, cmd)
	h.undone = nil
}

// Undo reverses the most recently applied command and moves it onto the
// undone stack. Fails with ErrNoHistory when nothing has been applied.
func (h *History) Undo() error {
	if len(h.applied) == 0 {
		return ErrNoHistory
	}

	cmd := h.applied[len(h.applied)-1]
	h.applied = h.applied[:len(h.applied)-1]
	cmd.Reverse()
	h.undone = append(h.undone, cmd)

	return nil
}

// Redo re-applies the most recently undone command and moves it back
// onto the applied stack. Fails with ErrNoHistory when nothing has been
// undone.
func (h *History) Redo() error {
	if len(h.undone) == 0 {
		return ErrNoHistory
	}

	cmd := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	cmd.Apply()
	h.applied = append(h.applied, cmd)

	return nil
}

// CanUndo reports whether an applied command is available to reverse.
func (h *History) CanUndo() bool {
	return len(h.applied) > 0
}

// CanRedo reports whether an undone command is available to re-apply.
func (h *History) CanRedo() bool {
	return len(h.undone) > 0
}
