package editor

import (
	"doodle/diagram"
)

// DefaultHistoryCapacity bounds the undo stack. Exceeding it drops the
// oldest snapshot, an accepted loss of deep history.
const DefaultHistoryCapacity = 50

// History manages undo/redo as two stacks of deep-cloned diagram snapshots.
// Commit deduplicates against the undo top by structural equality, so
// idempotent commits collapse into one entry. The undo stack always holds
// at least the initial state after Init, and that state is never undoable
// past.
type History struct {
	undo     []*diagram.Diagram
	redo     []*diagram.Diagram
	capacity int
	onCommit func(*diagram.Diagram) // persistence hook, may be nil
}

// NewHistory creates a history manager. Non-positive capacities fall back
// to the default.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// OnCommit installs the persistence hook, called with the committed
// snapshot after every commit that changed the stack.
func (h *History) OnCommit(fn func(*diagram.Diagram)) {
	h.onCommit = fn
}

// Init seeds the history with the starting state. Any prior history is
// discarded.
func (h *History) Init(d *diagram.Diagram) {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
	h.undo = append(h.undo, d.Clone())
}

// Commit records the current diagram. If it is structurally equal to the
// undo top this is a no-op; otherwise the snapshot is pushed, the redo
// stack is cleared, the capacity bound enforced, and the persistence hook
// notified. Returns true when a new entry was recorded.
func (h *History) Commit(d *diagram.Diagram) bool {
	if len(h.undo) > 0 && h.undo[len(h.undo)-1].Equal(d) {
		return false
	}
	snap := d.Clone()
	h.undo = append(h.undo, snap)
	h.redo = h.redo[:0]
	if len(h.undo) > h.capacity {
		h.undo = h.undo[len(h.undo)-h.capacity:]
	}
	if h.onCommit != nil {
		h.onCommit(snap)
	}
	return true
}

// CanUndo reports whether an undo would change state.
func (h *History) CanUndo() bool {
	return len(h.undo) > 1
}

// CanRedo reports whether a redo would change state.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Undo pops the current state onto the redo stack and returns a clone of
// the state beneath it. Returns nil when only the initial state remains.
func (h *History) Undo() *diagram.Diagram {
	if !h.CanUndo() {
		return nil
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, top)
	return h.undo[len(h.undo)-1].Clone()
}

// Redo pops the next snapshot off the redo stack, restores it to the undo
// stack, and returns a clone. Returns nil when there is nothing to redo.
func (h *History) Redo() *diagram.Diagram {
	if !h.CanRedo() {
		return nil
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, next)
	return next.Clone()
}

// Depth returns the number of snapshots on the undo stack.
func (h *History) Depth() int {
	return len(h.undo)
}
