package export

import (
	"fmt"
	"strings"

	"doodle/diagram"
)

// MermaidExporter exports diagrams to Mermaid flowchart syntax.
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter.
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

// Export converts the diagram to Mermaid syntax. Node shapes map onto the
// closest Mermaid bracket style; edges that fail endpoint resolution are
// skipped the same way renderers skip them.
func (e *MermaidExporter) Export(d *diagram.Diagram) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("diagram is nil")
	}

	var sb strings.Builder
	sb.WriteString("flowchart TD\n")

	alias := make(map[string]string, len(d.Nodes))
	for i, node := range d.Nodes {
		id := fmt.Sprintf("N%d", i)
		alias[node.ID] = id
		sb.WriteString("    " + id + mermaidShape(node) + "\n")
	}

	for _, edge := range d.Edges {
		from, ok := alias[edge.From]
		if !ok {
			continue
		}
		to, ok := alias[edge.To]
		if !ok {
			continue
		}
		if edge.Label != "" {
			fmt.Fprintf(&sb, "    %s -->|%s| %s\n", from, mermaidEscape(edge.Label), to)
		} else {
			fmt.Fprintf(&sb, "    %s --> %s\n", from, to)
		}
	}

	return []byte(sb.String()), nil
}

func mermaidShape(n diagram.Node) string {
	label := mermaidEscape(n.Label)
	if label == "" {
		label = " "
	}
	switch n.Type {
	case diagram.TypeDecision:
		return "{" + label + "}"
	case diagram.TypeTerminator:
		return "([" + label + "])"
	case diagram.TypeData:
		return "[/" + label + "/]"
	default:
		return "[" + label + "]"
	}
}

func mermaidEscape(s string) string {
	r := strings.NewReplacer("|", "/", "[", "(", "]", ")", "{", "(", "}", ")", "\n", " ")
	return r.Replace(s)
}

// FileExtension returns the file extension for Mermaid.
func (e *MermaidExporter) FileExtension() string {
	return ".mmd"
}

// FormatName returns the format name.
func (e *MermaidExporter) FormatName() string {
	return "Mermaid"
}
