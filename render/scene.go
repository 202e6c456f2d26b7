// Package render builds a drawable scene from a diagram. The scene is the
// contract between the core and whatever actually draws: each node becomes a
// shape keyed by its type, each resolvable edge becomes a cubic Bézier curve
// with a label affordance at its parametric midpoint. Renderers never touch
// the diagram directly; they read a Scene.
package render

import (
	"doodle/diagram"
)

// EmptyLabelGlyph is shown at an edge's midpoint when it has no label, so
// the label affordance stays clickable.
const EmptyLabelGlyph = "+"

// PointF is a point in model space with sub-grid precision, used for curve
// evaluation.
type PointF struct {
	X, Y float64
}

// Shape is the drawable form of one node.
type Shape struct {
	ID       string
	Kind     diagram.NodeType
	X, Y     int
	Width    int
	Height   int
	Label    string
	Selected bool
}

// Curve is the drawable form of one edge: a cubic Bézier from the source
// node's bottom-center to the target node's top-center. Control points sit
// at the vertical midpoint below the source and above the target.
type Curve struct {
	ID       string
	P0       PointF // start (source bottom-center)
	P1       PointF // first control point
	P2       PointF // second control point
	P3       PointF // end (target top-center)
	Label    string
	LabelAt  PointF // curve point at t = 0.5
	Selected bool
}

// PointAt evaluates the cubic Bézier at parameter t in [0, 1].
func (c Curve) PointAt(t float64) PointF {
	u := 1 - t
	return PointF{
		X: u*u*u*c.P0.X + 3*u*u*t*c.P1.X + 3*u*t*t*c.P2.X + t*t*t*c.P3.X,
		Y: u*u*u*c.P0.Y + 3*u*u*t*c.P1.Y + 3*u*t*t*c.P2.Y + t*t*t*c.P3.Y,
	}
}

// DisplayLabel returns the label text to draw at the curve midpoint.
func (c Curve) DisplayLabel() string {
	if c.Label == "" {
		return EmptyLabelGlyph
	}
	return c.Label
}

// Guide is the temporary connect-gesture line from the source node's anchor
// to the current pointer position. Pure visual state, never part of the
// model.
type Guide struct {
	From diagram.Point
	ToX  float64
	ToY  float64
}

// Scene is the full draw list for one frame.
type Scene struct {
	Shapes []Shape
	Curves []Curve
	Guide  *Guide
}

// Build constructs the scene for a diagram. selectedID marks at most one
// shape or curve as selected; guide may be nil. Edges whose endpoints do
// not both resolve are skipped silently.
func Build(d *diagram.Diagram, selectedID string, guide *Guide) Scene {
	s := Scene{
		Shapes: make([]Shape, 0, len(d.Nodes)),
		Curves: make([]Curve, 0, len(d.Edges)),
		Guide:  guide,
	}
	for _, n := range d.Nodes {
		s.Shapes = append(s.Shapes, Shape{
			ID:       n.ID,
			Kind:     n.Type,
			X:        n.X,
			Y:        n.Y,
			Width:    n.Width,
			Height:   n.Height,
			Label:    n.Label,
			Selected: n.ID == selectedID,
		})
	}
	for _, e := range d.Edges {
		from, to, ok := d.EdgeEndpoints(e)
		if !ok {
			continue
		}
		s.Curves = append(s.Curves, buildCurve(e, *from, *to, e.ID == selectedID))
	}
	return s
}

func buildCurve(e diagram.Edge, from, to diagram.Node, selected bool) Curve {
	start := from.BottomCenter()
	end := to.TopCenter()
	midY := float64(start.Y+end.Y) / 2
	c := Curve{
		ID:       e.ID,
		P0:       PointF{float64(start.X), float64(start.Y)},
		P1:       PointF{float64(start.X), midY},
		P2:       PointF{float64(end.X), midY},
		P3:       PointF{float64(end.X), float64(end.Y)},
		Label:    e.Label,
		Selected: selected,
	}
	c.LabelAt = c.PointAt(0.5)
	return c
}
