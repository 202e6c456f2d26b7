package export

import (
	"fmt"
	"strings"

	"doodle/diagram"
	"doodle/render"
)

// SVGExporter exports a vector snapshot of the diagram.
type SVGExporter struct{}

// NewSVGExporter creates a new SVG exporter.
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{}
}

const svgPadding = 40

// Export renders the diagram's scene as a standalone SVG document. The
// scene is built without a selection, so captures are always clean.
func (e *SVGExporter) Export(d *diagram.Diagram) ([]byte, error) {
	scene := render.Build(d, "", nil)
	minX, minY, maxX, maxY := sceneBounds(scene)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%d %d %d %d" font-family="sans-serif" font-size="14">`+"\n",
		minX-svgPadding, minY-svgPadding, maxX-minX+2*svgPadding, maxY-minY+2*svgPadding)

	for _, c := range scene.Curves {
		fmt.Fprintf(&sb, `  <path d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke="#555" stroke-width="2"/>`+"\n",
			c.P0.X, c.P0.Y, c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
		if c.Label != "" {
			fmt.Fprintf(&sb, `  <text x="%.1f" y="%.1f" text-anchor="middle" fill="#333">%s</text>`+"\n",
				c.LabelAt.X, c.LabelAt.Y-6, escapeText(c.Label))
		}
	}
	for _, s := range scene.Shapes {
		writeShape(&sb, s)
		fmt.Fprintf(&sb, `  <text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" fill="#222">%s</text>`+"\n",
			s.X+s.Width/2, s.Y+s.Height/2, escapeText(s.Label))
	}

	sb.WriteString("</svg>\n")
	return []byte(sb.String()), nil
}

func writeShape(sb *strings.Builder, s render.Shape) {
	style := `fill="#fff" stroke="#333" stroke-width="2"`
	switch s.Kind {
	case diagram.TypeDecision:
		cx, cy := s.X+s.Width/2, s.Y+s.Height/2
		fmt.Fprintf(sb, `  <polygon points="%d,%d %d,%d %d,%d %d,%d" %s/>`+"\n",
			cx, s.Y, s.X+s.Width, cy, cx, s.Y+s.Height, s.X, cy, style)
	case diagram.TypeTerminator:
		fmt.Fprintf(sb, `  <rect x="%d" y="%d" width="%d" height="%d" rx="%d" %s/>`+"\n",
			s.X, s.Y, s.Width, s.Height, s.Height/2, style)
	case diagram.TypeData:
		skew := s.Height / 3
		fmt.Fprintf(sb, `  <polygon points="%d,%d %d,%d %d,%d %d,%d" %s/>`+"\n",
			s.X+skew, s.Y, s.X+s.Width, s.Y, s.X+s.Width-skew, s.Y+s.Height, s.X, s.Y+s.Height, style)
	default:
		fmt.Fprintf(sb, `  <rect x="%d" y="%d" width="%d" height="%d" rx="4" %s/>`+"\n",
			s.X, s.Y, s.Width, s.Height, style)
	}
}

func sceneBounds(scene render.Scene) (minX, minY, maxX, maxY int) {
	if len(scene.Shapes) == 0 {
		return 0, 0, 400, 300
	}
	minX, minY = scene.Shapes[0].X, scene.Shapes[0].Y
	maxX, maxY = minX, minY
	for _, s := range scene.Shapes {
		if s.X < minX {
			minX = s.X
		}
		if s.Y < minY {
			minY = s.Y
		}
		if s.X+s.Width > maxX {
			maxX = s.X + s.Width
		}
		if s.Y+s.Height > maxY {
			maxY = s.Y + s.Height
		}
	}
	return minX, minY, maxX, maxY
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// FileExtension returns the file extension for SVG.
func (e *SVGExporter) FileExtension() string {
	return ".svg"
}

// FormatName returns the format name.
func (e *SVGExporter) FormatName() string {
	return "SVG"
}
