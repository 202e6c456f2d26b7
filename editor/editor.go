// Package editor implements the interactive core of doodle: the pointer
// gesture state machine, the single text-edit session, undo/redo history,
// and selection. All mutation funnels through an Editor, driven by one
// event loop; the Editor is not safe for concurrent use and never needs to
// be.
package editor

import (
	"go.uber.org/zap"

	"doodle/diagram"
	"doodle/geometry"
	"doodle/render"
)

// ItemKind distinguishes what a selection or edit session refers to.
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemNode
	ItemEdge
)

// Saver persists committed diagram snapshots. Save failures are logged and
// never interrupt editing.
type Saver interface {
	SaveDiagram(d *diagram.Diagram) error
}

// Editor owns the live diagram plus all transient interaction state: the
// current tool, gesture, selection, and edit session. Renderers read from
// it; they never mutate.
type Editor struct {
	diagram *diagram.Diagram
	history *History
	view    geometry.View
	log     *zap.Logger

	tool  Tool
	state State

	// Gesture state, valid from pointer-down to pointer-up.
	targetID     string
	grabDX       float64 // model-space offset of pointer from node origin
	grabDY       float64
	gestureDirty bool
	guide        *render.Guide

	// Selection: at most one item.
	selectedKind ItemKind
	selectedID   string

	session Session
	text    []rune // label text buffer backing the open session

	saver Saver
}

// New creates an editor around a diagram. logger may be nil.
func New(d *diagram.Diagram, historyCapacity int, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Editor{
		diagram: d,
		history: NewHistory(historyCapacity),
		view:    geometry.DefaultView(),
		log:     logger,
		tool:    ToolSelect,
		state:   StateIdle,
	}
	e.history.Init(d)
	e.history.OnCommit(e.persist)
	return e
}

// SetSaver installs the persistence target invoked on every committed
// history change and on project-name edits.
func (e *Editor) SetSaver(s Saver) {
	e.saver = s
}

func (e *Editor) persist(snap *diagram.Diagram) {
	if e.saver == nil {
		return
	}
	if err := e.saver.SaveDiagram(snap); err != nil {
		e.log.Warn("persist failed", zap.Error(err))
	}
}

// Diagram returns the live diagram. Callers outside the editor read only.
func (e *Editor) Diagram() *diagram.Diagram {
	return e.diagram
}

// History exposes the history manager, mainly for inspection in tests and
// status displays.
func (e *Editor) History() *History {
	return e.history
}

// View returns the current view transform.
func (e *Editor) View() geometry.View {
	return e.view
}

// SetView replaces the view transform (pan/zoom from the frontend).
func (e *Editor) SetView(v geometry.View) {
	e.view = v
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool {
	return e.tool
}

// SetTool switches the active tool. Switching mid-gesture is ignored.
func (e *Editor) SetTool(t Tool) {
	if e.state == StateIdle {
		e.tool = t
	}
}

// State returns the current gesture state.
func (e *Editor) State() State {
	return e.state
}

// Selection returns the currently selected item, if any.
func (e *Editor) Selection() (ItemKind, string) {
	return e.selectedKind, e.selectedID
}

// SelectNode selects a node by id, replacing any previous selection.
// No-op if the node does not exist.
func (e *Editor) SelectNode(id string) {
	if e.diagram.FindNode(id) != nil {
		e.selectedKind, e.selectedID = ItemNode, id
	}
}

// SelectEdge selects an edge by id, replacing any previous selection.
// Edges are addressed by id from the renderer's label affordance.
func (e *Editor) SelectEdge(id string) {
	if e.diagram.FindEdge(id) != nil {
		e.selectedKind, e.selectedID = ItemEdge, id
	}
}

// ClearSelection drops the selection.
func (e *Editor) ClearSelection() {
	e.selectedKind, e.selectedID = ItemNone, ""
}

// DeleteSelection deletes the selected node (cascading its edges) or edge,
// commits, and clears the selection. No-op when nothing is selected.
func (e *Editor) DeleteSelection() {
	switch e.selectedKind {
	case ItemNode:
		if e.session.Active() && e.session.ID == e.selectedID {
			e.CancelEdit()
		}
		e.diagram.DeleteNode(e.selectedID)
	case ItemEdge:
		if e.session.Active() && e.session.ID == e.selectedID {
			e.CancelEdit()
		}
		e.diagram.DeleteEdge(e.selectedID)
	default:
		return
	}
	e.ClearSelection()
	e.history.Commit(e.diagram)
}

// AddNode places a new node of the given type at a model-space position and
// selects it.
func (e *Editor) AddNode(t diagram.NodeType, x, y int) *diagram.Node {
	n := e.diagram.AddNode(t, x, y)
	e.selectedKind, e.selectedID = ItemNode, n.ID
	e.history.Commit(e.diagram)
	return n
}

// SetProjectName renames the project and persists immediately. Name edits
// do not create history entries of their own.
func (e *Editor) SetProjectName(name string) {
	e.diagram.ProjectName = name
	e.persist(e.diagram)
}

// Undo rolls the diagram back one committed state. No-op at the initial
// state.
func (e *Editor) Undo() {
	if snap := e.history.Undo(); snap != nil {
		e.diagram.Restore(snap)
		e.ClearSelection()
	}
}

// Redo re-applies the most recently undone state. No-op when nothing was
// undone.
func (e *Editor) Redo() {
	if snap := e.history.Redo(); snap != nil {
		e.diagram.Restore(snap)
		e.ClearSelection()
	}
}

// Scene builds the current draw list for renderers.
func (e *Editor) Scene() render.Scene {
	return render.Build(e.diagram, e.selectedID, e.guide)
}
