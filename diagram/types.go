// Package diagram contains the fundamental types of the doodle editor: the
// node and edge collections that make up a diagram, and the operations that
// mutate them. The Diagram is the sole owner of its nodes and edges; every
// other component holds transient, non-owning references by id.
package diagram

// Point represents a 2D coordinate in model space.
type Point struct {
	X, Y int
}

// NodeType identifies the shape kind of a node. The set is open: unknown
// types fall back to generic defaults when a node is created.
type NodeType string

// Built-in node types.
const (
	TypeProcess    NodeType = "process"
	TypeDecision   NodeType = "decision"
	TypeTerminator NodeType = "terminator"
	TypeData       NodeType = "data"
	TypeNote       NodeType = "note"
)

// Minimum node dimensions, enforced at resize time.
const (
	MinNodeWidth  = 60
	MinNodeHeight = 40
)

// Defaults for nodes whose type has no entry in the defaults table.
const (
	DefaultNodeWidth  = 160
	DefaultNodeHeight = 60
)

// nodeDefaults holds the initial size and label for a node type.
type nodeDefaults struct {
	Width  int
	Height int
	Label  string
}

var defaultsByType = map[NodeType]nodeDefaults{
	TypeProcess:    {160, 60, "Process"},
	TypeDecision:   {140, 100, "Decision"},
	TypeTerminator: {160, 60, "Start / End"},
	TypeData:       {160, 60, "Data"},
	TypeNote:       {180, 80, "Note"},
}

// Node represents a box in the diagram. Position is the top-left corner in
// model space and is grid-aligned whenever no gesture is in flight.
type Node struct {
	ID     string   `json:"id"`
	Type   NodeType `json:"type"`
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Label  string   `json:"label"`
}

// Contains checks if a model-space point is inside the node's bounding box.
func (n Node) Contains(p Point) bool {
	return p.X >= n.X && p.X < n.X+n.Width &&
		p.Y >= n.Y && p.Y < n.Y+n.Height
}

// BottomCenter returns the anchor point edges leave from.
func (n Node) BottomCenter() Point {
	return Point{X: n.X + n.Width/2, Y: n.Y + n.Height}
}

// TopCenter returns the anchor point edges arrive at.
func (n Node) TopCenter() Point {
	return Point{X: n.X + n.Width/2, Y: n.Y}
}

// Edge represents a directed, labeled connection between two nodes.
// Endpoints are immutable after creation; only the label may change.
type Edge struct {
	ID    string `json:"id"`
	From  string `json:"source"`
	To    string `json:"target"`
	Label string `json:"label"`
}

// Diagram represents the complete editable state: the ordered node and edge
// collections plus the project name. It is the unit of serialization,
// undo/redo snapshotting, and persistence.
type Diagram struct {
	Nodes       []Node `json:"nodes"`
	Edges       []Edge `json:"edges"`
	ProjectName string `json:"projectName"`
}

// New returns an empty diagram.
func New(projectName string) *Diagram {
	return &Diagram{ProjectName: projectName}
}

// Seed returns the startup fallback diagram: one default process node.
// Used when persisted state is absent or unreadable.
func Seed(projectName string) *Diagram {
	d := New(projectName)
	d.AddNode(TypeProcess, 320, 150)
	return d
}

// Clone creates a deep copy of the diagram.
func (d *Diagram) Clone() *Diagram {
	if d == nil {
		return nil
	}
	clone := &Diagram{
		Nodes:       make([]Node, len(d.Nodes)),
		Edges:       make([]Edge, len(d.Edges)),
		ProjectName: d.ProjectName,
	}
	copy(clone.Nodes, d.Nodes)
	copy(clone.Edges, d.Edges)
	return clone
}

// Restore overwrites this diagram's contents in place from a snapshot,
// preserving the pointer identity that renderers and the editor hold.
func (d *Diagram) Restore(from *Diagram) {
	if from == nil {
		return
	}
	c := from.Clone()
	d.Nodes = c.Nodes
	d.Edges = c.Edges
	d.ProjectName = c.ProjectName
}

// Equal reports structural equality with another diagram. History dedup
// uses this rather than comparing serialized forms, so field ordering in
// the JSON encoding can never affect it.
func (d *Diagram) Equal(other *Diagram) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.ProjectName != other.ProjectName ||
		len(d.Nodes) != len(other.Nodes) ||
		len(d.Edges) != len(other.Edges) {
		return false
	}
	for i := range d.Nodes {
		if d.Nodes[i] != other.Nodes[i] {
			return false
		}
	}
	for i := range d.Edges {
		if d.Edges[i] != other.Edges[i] {
			return false
		}
	}
	return true
}
