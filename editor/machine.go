package editor

import (
	"doodle/diagram"
	"doodle/geometry"
	"doodle/render"
)

// State represents the pointer gesture state. The machine starts Idle and
// always cycles back to Idle on pointer-up; there are no terminal states.
type State int

const (
	StateIdle       State = iota // no gesture in flight
	StateDragging                // moving a node under the select tool
	StateResizing                // sizing a node from its corner handle
	StateConnecting              // drawing a connection from a source node
)

// String returns the state name for status display.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateDragging:
		return "DRAG"
	case StateResizing:
		return "RESIZE"
	case StateConnecting:
		return "CONNECT"
	default:
		return "UNKNOWN"
	}
}

// Tool selects what a pointer-down on a node body starts.
type Tool int

const (
	ToolSelect    Tool = iota // drag to move
	ToolConnector             // drag to connect
)

// String returns the tool name for status display.
func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolConnector:
		return "connector"
	default:
		return "unknown"
	}
}

// HandleSize is the side length of the square resize handle anchored at a
// node's bottom-right corner, in model units.
const HandleSize = 12

// hitKind classifies what a pointer position lands on.
type hitKind int

const (
	hitBackground hitKind = iota
	hitNodeBody
	hitNodeHandle
)

type hit struct {
	kind   hitKind
	nodeID string
}

// hitTest resolves a model-space point against the diagram with explicit
// priority: resize handles first, then node bodies, then background. The
// priority ordering replaces event-propagation tricks; the first match
// wins and nothing else needs to intercept.
func (e *Editor) hitTest(mx, my float64) hit {
	x, y := int(mx), int(my)
	for i := range e.diagram.Nodes {
		n := &e.diagram.Nodes[i]
		if x >= n.X+n.Width-HandleSize && x < n.X+n.Width &&
			y >= n.Y+n.Height-HandleSize && y < n.Y+n.Height {
			return hit{kind: hitNodeHandle, nodeID: n.ID}
		}
	}
	if n := e.diagram.NodeAt(x, y); n != nil {
		return hit{kind: hitNodeBody, nodeID: n.ID}
	}
	return hit{kind: hitBackground}
}

// PointerDown begins a gesture from a primary-button press at a
// screen-space position. On a resize handle it starts Resizing; on a node
// body it starts Dragging or Connecting depending on the active tool; on
// bare canvas it clears the selection and closes any open edit session.
// Gestures never start on the item an edit session currently targets.
func (e *Editor) PointerDown(px, py float64) {
	if e.state != StateIdle {
		return
	}
	mx, my := geometry.ToModel(px, py, e.view)
	h := e.hitTest(mx, my)

	if h.kind == hitBackground {
		e.CloseEdit()
		e.ClearSelection()
		return
	}
	if e.session.Active() && e.session.Kind == ItemNode && e.session.ID == h.nodeID {
		return
	}

	n := e.diagram.FindNode(h.nodeID)
	if n == nil {
		return
	}
	e.targetID = n.ID
	e.gestureDirty = false

	switch {
	case h.kind == hitNodeHandle:
		e.state = StateResizing
		e.SelectNode(n.ID)
	case e.tool == ToolConnector:
		e.state = StateConnecting
		e.guide = &render.Guide{From: n.BottomCenter(), ToX: mx, ToY: my}
	default:
		e.state = StateDragging
		e.grabDX = mx - float64(n.X)
		e.grabDY = my - float64(n.Y)
		e.SelectNode(n.ID)
	}
}

// PointerMove advances the gesture in flight. Dragging keeps the recorded
// grab offset and snaps the node origin; Resizing snaps the size against
// the minimums; Connecting only moves the guide line.
func (e *Editor) PointerMove(px, py float64) {
	if e.state == StateIdle {
		return
	}
	mx, my := geometry.ToModel(px, py, e.view)

	switch e.state {
	case StateDragging:
		n := e.diagram.FindNode(e.targetID)
		if n == nil {
			return
		}
		x := geometry.Snap(mx - e.grabDX)
		y := geometry.Snap(my - e.grabDY)
		if x != n.X || y != n.Y {
			n.X, n.Y = x, y
			e.gestureDirty = true
		}
	case StateResizing:
		n := e.diagram.FindNode(e.targetID)
		if n == nil {
			return
		}
		w := geometry.Max(diagram.MinNodeWidth, geometry.Snap(mx-float64(n.X)))
		h := geometry.Max(diagram.MinNodeHeight, geometry.Snap(my-float64(n.Y)))
		if w != n.Width || h != n.Height {
			n.Width, n.Height = w, h
			e.gestureDirty = true
		}
	case StateConnecting:
		if e.guide != nil {
			e.guide.ToX, e.guide.ToY = mx, my
		}
	}
}

// PointerUp finishes the gesture. A Connecting release over a node other
// than the source creates a new edge; a release anywhere else creates
// nothing. Whatever the state, a gesture that mutated the model commits
// one history entry, and the machine returns to Idle.
func (e *Editor) PointerUp(px, py float64) {
	if e.state == StateIdle {
		return
	}
	if e.state == StateConnecting {
		mx, my := geometry.ToModel(px, py, e.view)
		if target := e.connectTargetAt(int(mx), int(my)); target != nil {
			if e.diagram.Connect(e.targetID, target.ID) != nil {
				e.gestureDirty = true
			}
		}
	}
	if e.gestureDirty {
		e.history.Commit(e.diagram)
	}
	e.state = StateIdle
	e.targetID = ""
	e.grabDX, e.grabDY = 0, 0
	e.gestureDirty = false
	e.guide = nil
}

// connectTargetAt resolves a connect release point against every node
// except the gesture's source, first match in insertion order. The source
// is excluded before hit-testing so a node underneath it can still receive
// the connection.
func (e *Editor) connectTargetAt(x, y int) *diagram.Node {
	p := diagram.Point{X: x, Y: y}
	for i := range e.diagram.Nodes {
		n := &e.diagram.Nodes[i]
		if n.ID != e.targetID && n.Contains(p) {
			return n
		}
	}
	return nil
}
