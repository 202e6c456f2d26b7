package editor

import (
	"fmt"
	"testing"

	"doodle/diagram"
)

func diagramWithNodes(count int) *diagram.Diagram {
	d := diagram.New("test")
	for i := 0; i < count; i++ {
		d.AddNode(diagram.TypeProcess, i*200, 0)
	}
	return d
}

func TestCommitDedupesIdenticalStates(t *testing.T) {
	h := NewHistory(10)
	d := diagramWithNodes(1)
	h.Init(d)

	d.AddNode(diagram.TypeProcess, 300, 0)
	if !h.Commit(d) {
		t.Fatal("First commit of a changed diagram should record an entry")
	}
	if h.Commit(d) {
		t.Error("Commit with no intervening mutation should collapse")
	}
	if h.Depth() != 2 {
		t.Errorf("Expected depth 2, got %d", h.Depth())
	}
}

func TestCommitClearsRedo(t *testing.T) {
	h := NewHistory(10)
	d := diagramWithNodes(1)
	h.Init(d)

	d.AddNode(diagram.TypeProcess, 300, 0)
	h.Commit(d)
	d.Restore(h.Undo())
	if !h.CanRedo() {
		t.Fatal("Redo should be available after undo")
	}

	d.AddNode(diagram.TypeDecision, 0, 300)
	h.Commit(d)
	if h.CanRedo() {
		t.Error("A new commit should clear the redo stack")
	}
}

func TestUndoStopsAtInitialState(t *testing.T) {
	h := NewHistory(10)
	d := diagramWithNodes(1)
	h.Init(d)

	if h.CanUndo() {
		t.Error("The initial state alone should not be undoable")
	}
	if snap := h.Undo(); snap != nil {
		t.Error("Undo at depth 1 should return nil")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := NewHistory(10)
	d := diagramWithNodes(1)
	h.Init(d)

	for i := 0; i < 4; i++ {
		d.AddNode(diagram.TypeProcess, 200+i*200, 200)
		h.Commit(d)
	}
	before := d.Clone()

	d.Restore(h.Undo())
	if d.Equal(before) {
		t.Fatal("Undo should change the diagram")
	}
	d.Restore(h.Redo())
	if !d.Equal(before) {
		t.Error("Undo followed by redo should restore the prior state exactly")
	}
}

func TestCapacityDropsOldestFIFO(t *testing.T) {
	h := NewHistory(3)
	d := diagram.New("test")
	h.Init(d)

	for i := 0; i < 10; i++ {
		d.ProjectName = fmt.Sprintf("rev-%d", i)
		h.Commit(d)
	}
	if h.Depth() != 3 {
		t.Fatalf("Expected depth capped at 3, got %d", h.Depth())
	}

	// Walk back as far as allowed; the oldest reachable state is rev-7.
	var last *diagram.Diagram
	for h.CanUndo() {
		last = h.Undo()
	}
	if last == nil || last.ProjectName != "rev-7" {
		t.Errorf("Oldest surviving state should be rev-7, got %v", last)
	}
}

func TestCommitTriggersPersistenceHook(t *testing.T) {
	h := NewHistory(10)
	d := diagramWithNodes(1)
	h.Init(d)

	saved := 0
	h.OnCommit(func(*diagram.Diagram) { saved++ })

	d.AddNode(diagram.TypeProcess, 300, 0)
	h.Commit(d)
	h.Commit(d) // collapsed, must not persist again
	if saved != 1 {
		t.Errorf("Expected exactly 1 persistence call, got %d", saved)
	}
}

func TestUndoReturnsIsolatedClone(t *testing.T) {
	h := NewHistory(10)
	d := diagramWithNodes(1)
	h.Init(d)
	d.AddNode(diagram.TypeProcess, 300, 0)
	h.Commit(d)

	snap := h.Undo()
	snap.Nodes[0].Label = "mutated"

	if redone := h.Redo(); redone == nil {
		t.Fatal("Redo should be available")
	}
	if again := h.Undo(); again.Nodes[0].Label == "mutated" {
		t.Error("History snapshots must not share storage with returned clones")
	}
}
