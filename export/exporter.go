// Package export provides functionality to export diagrams to image and
// document formats.
package export

import (
	"fmt"

	"doodle/diagram"
)

// Format represents an export format.
type Format string

const (
	// FormatJSON exports the raw diagram document (the persistence format).
	FormatJSON Format = "json"
	// FormatSVG exports a vector snapshot.
	FormatSVG Format = "svg"
	// FormatPNG exports a flat raster snapshot.
	FormatPNG Format = "png"
	// FormatMermaid exports Mermaid flowchart syntax (for Markdown).
	FormatMermaid Format = "mermaid"
)

// Exporter converts a diagram to one output format.
type Exporter interface {
	// Export converts a diagram to the target format.
	Export(d *diagram.Diagram) ([]byte, error)
	// FileExtension returns the recommended file extension for this format.
	FileExtension() string
	// FormatName returns a human-readable name for this format.
	FormatName() string
}

// NewExporter creates an exporter for the specified format.
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatSVG:
		return NewSVGExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// AvailableFormats returns all export formats.
func AvailableFormats() []Format {
	return []Format{FormatJSON, FormatSVG, FormatPNG, FormatMermaid}
}
