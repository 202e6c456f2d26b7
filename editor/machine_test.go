package editor

import (
	"testing"

	"doodle/diagram"
	"doodle/geometry"
)

func newTestEditor() (*Editor, *diagram.Diagram) {
	d := diagram.New("test")
	return New(d, 0, nil), d
}

func TestDragMovesNodeWithOffsetAndSnap(t *testing.T) {
	e, d := newTestEditor()
	n := d.AddNode(diagram.TypeProcess, 320, 150)
	e.History().Init(d)

	// Grab inside the body (not the corner handle), drag by (13, 27).
	e.PointerDown(330, 160)
	if e.State() != StateDragging {
		t.Fatalf("Expected DRAG, got %s", e.State())
	}
	e.PointerMove(343, 187)
	e.PointerUp(343, 187)

	if n.X != 330 || n.Y != 180 {
		t.Errorf("Expected dragged position (330, 180), got (%d, %d)", n.X, n.Y)
	}
	if e.State() != StateIdle {
		t.Errorf("Machine should return to IDLE, got %s", e.State())
	}
	if !e.History().CanUndo() {
		t.Error("A mutating drag should have committed a history entry")
	}
}

func TestDragUnderZoom(t *testing.T) {
	e, d := newTestEditor()
	n := d.AddNode(diagram.TypeProcess, 100, 100)
	e.History().Init(d)
	e.SetView(geometry.View{OriginX: 50, OriginY: 50, Zoom: 2})

	// Screen (250, 250) -> model (100, 100): grab the node origin exactly.
	e.PointerDown(250, 250)
	if e.State() != StateDragging {
		t.Fatalf("Expected DRAG under zoom, got %s", e.State())
	}
	// Screen delta (100, 100) -> model delta (50, 50).
	e.PointerMove(350, 350)
	e.PointerUp(350, 350)

	if n.X != 150 || n.Y != 150 {
		t.Errorf("Expected (150, 150) after zoomed drag, got (%d, %d)", n.X, n.Y)
	}
}

func TestNonMutatingGestureCommitsNothing(t *testing.T) {
	e, d := newTestEditor()
	d.AddNode(diagram.TypeProcess, 100, 100)
	e.History().Init(d)

	e.PointerDown(110, 110)
	e.PointerUp(110, 110) // press and release without moving

	if e.History().CanUndo() {
		t.Error("A gesture that never mutated the model should not commit")
	}
}

func TestResizeFromHandleEnforcesMinimums(t *testing.T) {
	e, d := newTestEditor()
	n := d.AddNode(diagram.TypeProcess, 100, 100) // 160x60, handle near (260, 160)
	e.History().Init(d)

	e.PointerDown(255, 155)
	if e.State() != StateResizing {
		t.Fatalf("Expected RESIZE from the corner handle, got %s", e.State())
	}

	e.PointerMove(100+203, 100+88)
	if n.Width != 200 || n.Height != 90 {
		t.Errorf("Expected snapped size 200x90, got %dx%d", n.Width, n.Height)
	}

	// Collapse below the minimums.
	e.PointerMove(101, 101)
	if n.Width != diagram.MinNodeWidth || n.Height != diagram.MinNodeHeight {
		t.Errorf("Expected clamped size %dx%d, got %dx%d",
			diagram.MinNodeWidth, diagram.MinNodeHeight, n.Width, n.Height)
	}
	e.PointerUp(101, 101)

	if !e.History().CanUndo() {
		t.Error("Resize should have committed")
	}
}

func TestHandleWinsOverOverlappingBody(t *testing.T) {
	e, d := newTestEditor()
	d.AddNode(diagram.TypeProcess, 100, 100)
	// Second node overlapping the first node's handle corner.
	d.AddNode(diagram.TypeProcess, 250, 150)
	e.History().Init(d)

	e.PointerDown(255, 155) // inside first node's handle and second node's body
	if e.State() != StateResizing {
		t.Errorf("Handle regions must win over node bodies, got %s", e.State())
	}
	e.PointerUp(255, 155)
}

func TestConnectGestureCreatesEdgeOnce(t *testing.T) {
	e, d := newTestEditor()
	a := d.AddNode(diagram.TypeProcess, 320, 150)
	b := d.AddNode(diagram.TypeProcess, 500, 400)
	e.History().Init(d)
	e.SetTool(ToolConnector)

	e.PointerDown(330, 160)
	if e.State() != StateConnecting {
		t.Fatalf("Expected CONNECT, got %s", e.State())
	}
	e.PointerMove(400, 300)
	if e.Scene().Guide == nil {
		t.Error("Connecting should expose a guide line for the renderer")
	}
	e.PointerUp(510, 410) // inside b

	if len(d.Edges) != 1 {
		t.Fatalf("Expected exactly one edge, got %d", len(d.Edges))
	}
	edge := d.Edges[0]
	if edge.From != a.ID || edge.To != b.ID || edge.Label != "" {
		t.Errorf("Unexpected edge %+v", edge)
	}
	if e.Scene().Guide != nil {
		t.Error("Guide should be cleared after release")
	}
}

func TestConnectReleaseOutsideCreatesNothing(t *testing.T) {
	e, d := newTestEditor()
	d.AddNode(diagram.TypeProcess, 320, 150)
	d.AddNode(diagram.TypeProcess, 500, 400)
	e.History().Init(d)
	e.SetTool(ToolConnector)

	e.PointerDown(330, 160)
	e.PointerUp(5000, 5000)
	if len(d.Edges) != 0 {
		t.Errorf("Release on empty canvas should create no edge, got %d", len(d.Edges))
	}

	// Release back on the source is also not a connection.
	e.PointerDown(330, 160)
	e.PointerUp(330, 160)
	if len(d.Edges) != 0 {
		t.Errorf("Release on the source node should create no edge, got %d", len(d.Edges))
	}
	if e.History().CanUndo() {
		t.Error("Failed connect gestures should not commit history")
	}
}

func TestConnectReleaseOverOverlapExcludesSource(t *testing.T) {
	e, d := newTestEditor()
	a := d.AddNode(diagram.TypeProcess, 100, 100)
	b := d.AddNode(diagram.TypeProcess, 100, 100) // fully overlapping a
	e.History().Init(d)
	e.SetTool(ToolConnector)

	// Press starts on a (first in insertion order); release over the
	// stack must exclude the source and land on b.
	e.PointerDown(110, 110)
	e.PointerUp(110, 110)

	if len(d.Edges) != 1 {
		t.Fatalf("Expected the overlapping node to receive the connection, got %d edges", len(d.Edges))
	}
	if d.Edges[0].From != a.ID || d.Edges[0].To != b.ID {
		t.Errorf("Unexpected edge %+v", d.Edges[0])
	}
	if !e.History().CanUndo() {
		t.Error("The successful connect should commit")
	}
}

func TestBackgroundClickClearsSelectionAndSession(t *testing.T) {
	e, d := newTestEditor()
	n := d.AddNode(diagram.TypeProcess, 100, 100)
	e.History().Init(d)

	e.SelectNode(n.ID)
	e.OpenNodeEdit(n.ID)

	e.PointerDown(5000, 5000)
	if kind, _ := e.Selection(); kind != ItemNone {
		t.Error("Background click should clear the selection")
	}
	if e.EditSession().Active() {
		t.Error("Background click should close the edit session")
	}
	if e.State() != StateIdle {
		t.Errorf("Background click should stay IDLE, got %s", e.State())
	}
}

func TestGestureBlockedOnItemUnderEdit(t *testing.T) {
	e, d := newTestEditor()
	n := d.AddNode(diagram.TypeProcess, 100, 100)
	e.History().Init(d)

	e.OpenNodeEdit(n.ID)
	e.PointerDown(110, 110)
	if e.State() != StateIdle {
		t.Errorf("Gesture must not start on the item under edit, got %s", e.State())
	}
	if !e.EditSession().Active() {
		t.Error("The session should survive the press")
	}
}

func TestToolSwitchIgnoredMidGesture(t *testing.T) {
	e, d := newTestEditor()
	d.AddNode(diagram.TypeProcess, 100, 100)
	e.History().Init(d)

	e.PointerDown(110, 110)
	e.SetTool(ToolConnector)
	if e.Tool() != ToolSelect {
		t.Error("Tool switches mid-gesture should be ignored")
	}
	e.PointerUp(110, 110)
	e.SetTool(ToolConnector)
	if e.Tool() != ToolConnector {
		t.Error("Tool switch should apply once idle")
	}
}
