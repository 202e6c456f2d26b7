package editor

import (
	"errors"
	"testing"

	"doodle/diagram"
)

type recordingSaver struct {
	saves []*diagram.Diagram
	err   error
}

func (r *recordingSaver) SaveDiagram(d *diagram.Diagram) error {
	r.saves = append(r.saves, d)
	return r.err
}

func TestCommitsPersistThroughSaver(t *testing.T) {
	e, _ := newTestEditor()
	saver := &recordingSaver{}
	e.SetSaver(saver)

	e.AddNode(diagram.TypeProcess, 0, 0)
	if len(saver.saves) != 1 {
		t.Fatalf("Expected 1 save after AddNode, got %d", len(saver.saves))
	}
}

func TestSaverFailureDoesNotBlockEditing(t *testing.T) {
	e, d := newTestEditor()
	e.SetSaver(&recordingSaver{err: errors.New("disk full")})

	e.AddNode(diagram.TypeProcess, 0, 0)
	if len(d.Nodes) != 1 {
		t.Error("Editing should proceed even when persistence fails")
	}
}

func TestSetProjectNamePersistsWithoutHistoryEntry(t *testing.T) {
	e, d := newTestEditor()
	saver := &recordingSaver{}
	e.SetSaver(saver)

	e.SetProjectName("renamed")
	if d.ProjectName != "renamed" {
		t.Error("Project name should be applied")
	}
	if len(saver.saves) != 1 {
		t.Errorf("Name edits should persist immediately, got %d saves", len(saver.saves))
	}
	if e.History().CanUndo() {
		t.Error("Name edits should not create a history entry")
	}
}

func TestDeleteSelectionCascades(t *testing.T) {
	e, d := newTestEditor()
	a := d.AddNode(diagram.TypeProcess, 0, 0)
	b := d.AddNode(diagram.TypeProcess, 300, 0)
	d.Connect(a.ID, b.ID)
	e.History().Init(d)

	e.SelectNode(a.ID)
	e.DeleteSelection()

	if len(d.Nodes) != 1 || len(d.Edges) != 0 {
		t.Errorf("Expected cascade delete, got %d nodes %d edges", len(d.Nodes), len(d.Edges))
	}
	if kind, _ := e.Selection(); kind != ItemNone {
		t.Error("Selection should clear after delete")
	}
	if !e.History().CanUndo() {
		t.Error("Delete should commit")
	}
}

func TestDeleteSelectionNothingSelectedIsNoop(t *testing.T) {
	e, d := newTestEditor()
	d.AddNode(diagram.TypeProcess, 0, 0)
	e.History().Init(d)

	e.DeleteSelection()
	if len(d.Nodes) != 1 || e.History().CanUndo() {
		t.Error("DeleteSelection with no selection should do nothing")
	}
}

func TestUndoRedoThroughEditor(t *testing.T) {
	e, d := newTestEditor()
	e.AddNode(diagram.TypeProcess, 0, 0)
	e.AddNode(diagram.TypeDecision, 300, 0)
	before := d.Clone()

	e.Undo()
	if len(d.Nodes) != 1 {
		t.Fatalf("Expected 1 node after undo, got %d", len(d.Nodes))
	}
	e.Redo()
	if !d.Equal(before) {
		t.Error("Redo should restore the pre-undo diagram exactly")
	}

	// Undo past the initial state must stop there.
	e.Undo()
	e.Undo()
	e.Undo()
	if len(d.Nodes) != 0 {
		t.Errorf("Initial empty state should be the floor, got %d nodes", len(d.Nodes))
	}
}

type fakeExporter struct {
	seenSelection string
	fail          bool
	editor        *Editor
}

func (f *fakeExporter) Export(d *diagram.Diagram) ([]byte, error) {
	_, f.seenSelection = f.editor.Selection()
	if f.fail {
		return nil, errors.New("encoder exploded")
	}
	return []byte("ok"), nil
}

func (f *fakeExporter) FileExtension() string { return ".fake" }
func (f *fakeExporter) FormatName() string    { return "fake" }

func TestExportBracketsSelection(t *testing.T) {
	e, d := newTestEditor()
	n := d.AddNode(diagram.TypeProcess, 0, 0)
	e.History().Init(d)
	e.SelectNode(n.ID)

	exp := &fakeExporter{editor: e}
	out, err := e.Export(exp)
	if err != nil || string(out) != "ok" {
		t.Fatalf("Export = (%q, %v)", out, err)
	}
	if exp.seenSelection != "" {
		t.Error("Selection should be cleared during capture")
	}
	if _, id := e.Selection(); id != n.ID {
		t.Error("Selection should be restored after capture")
	}
}

func TestExportFailureRestoresSelection(t *testing.T) {
	e, d := newTestEditor()
	n := d.AddNode(diagram.TypeProcess, 0, 0)
	e.History().Init(d)
	e.SelectNode(n.ID)

	if _, err := e.Export(&fakeExporter{editor: e, fail: true}); err == nil {
		t.Fatal("Export should surface the adapter failure")
	}
	if _, id := e.Selection(); id != n.ID {
		t.Error("Selection must be restored even when export fails")
	}
	if !d.Equal(d.Clone()) {
		t.Error("Model state must be unaffected by export failure")
	}
}

func TestExportCommitsOpenSession(t *testing.T) {
	e, d := newTestEditor()
	n := d.AddNode(diagram.TypeProcess, 0, 0)
	e.History().Init(d)

	e.OpenNodeEdit(n.ID)
	e.SetEditText("captured")
	e.Export(&fakeExporter{editor: e})

	if d.FindNode(n.ID).Label != "captured" {
		t.Error("Export should commit the open edit session before capturing")
	}
	if e.EditSession().Active() {
		t.Error("No session should remain open after export")
	}
}
