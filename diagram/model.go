package diagram

import (
	"strings"

	"github.com/google/uuid"

	"doodle/geometry"
)

// newID returns a fresh unique identifier. Uniqueness within a diagram is
// all that matters here; there is no cryptographic requirement.
func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// resolveDefaults looks up the initial size and label for a node type.
// Unknown types get the generic size and a label made of the capitalized
// type name, so palette extensions work without touching the table.
func resolveDefaults(t NodeType) nodeDefaults {
	if def, ok := defaultsByType[t]; ok {
		return def
	}
	label := string(t)
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	return nodeDefaults{DefaultNodeWidth, DefaultNodeHeight, label}
}

// AddNode creates a node of the given type at (x, y), snapping the position
// to the grid and resolving size and label from the type's defaults. The
// new node is appended to the diagram and returned. Never fails.
func (d *Diagram) AddNode(t NodeType, x, y int) *Node {
	def := resolveDefaults(t)
	return d.AddNodeWithLabel(t, x, y, def.Label)
}

// AddNodeWithLabel is AddNode with an explicit initial label.
func (d *Diagram) AddNodeWithLabel(t NodeType, x, y int, label string) *Node {
	def := resolveDefaults(t)
	d.Nodes = append(d.Nodes, Node{
		ID:     newID("n"),
		Type:   t,
		X:      geometry.SnapInt(x),
		Y:      geometry.SnapInt(y),
		Width:  def.Width,
		Height: def.Height,
		Label:  label,
	})
	return &d.Nodes[len(d.Nodes)-1]
}

// DeleteNode removes the node with the given id and every edge whose source
// or target is that node, in one transaction. No-op if the id is absent.
func (d *Diagram) DeleteNode(id string) {
	for i, n := range d.Nodes {
		if n.ID == id {
			d.Nodes = append(d.Nodes[:i], d.Nodes[i+1:]...)
			break
		}
	}
	kept := d.Edges[:0]
	for _, e := range d.Edges {
		if e.From != id && e.To != id {
			kept = append(kept, e)
		}
	}
	d.Edges = kept
}

// DeleteEdge removes the edge with the given id. No-op if absent.
func (d *Diagram) DeleteEdge(id string) {
	for i, e := range d.Edges {
		if e.ID == id {
			d.Edges = append(d.Edges[:i], d.Edges[i+1:]...)
			return
		}
	}
}

// Connect creates a directed edge with an empty label between two distinct
// existing nodes. Returns nil when the endpoints coincide or either is
// missing.
func (d *Diagram) Connect(from, to string) *Edge {
	if from == to || d.FindNode(from) == nil || d.FindNode(to) == nil {
		return nil
	}
	d.Edges = append(d.Edges, Edge{
		ID:   newID("e"),
		From: from,
		To:   to,
	})
	return &d.Edges[len(d.Edges)-1]
}

// FindNode returns the node with the given id, or nil.
func (d *Diagram) FindNode(id string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

// FindEdge returns the edge with the given id, or nil.
func (d *Diagram) FindEdge(id string) *Edge {
	for i := range d.Edges {
		if d.Edges[i].ID == id {
			return &d.Edges[i]
		}
	}
	return nil
}

// NodeAt returns the first node, in insertion order, whose bounding box
// contains the model-space point. Overlapping nodes resolve to the first
// match. Returns nil when the point lies on empty canvas.
func (d *Diagram) NodeAt(x, y int) *Node {
	p := Point{X: x, Y: y}
	for i := range d.Nodes {
		if d.Nodes[i].Contains(p) {
			return &d.Nodes[i]
		}
	}
	return nil
}

// EdgeEndpoints resolves an edge's source and target nodes. ok is false
// when either endpoint is missing; cascade deletion normally prevents that,
// but persisted data may contain dangling references and consumers are
// expected to skip such edges silently.
func (d *Diagram) EdgeEndpoints(e Edge) (from, to *Node, ok bool) {
	from = d.FindNode(e.From)
	to = d.FindNode(e.To)
	return from, to, from != nil && to != nil
}
