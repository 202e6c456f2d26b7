package export

import (
	"encoding/json"

	"doodle/diagram"
)

// JSONExporter exports diagrams in the persistence document format.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a diagram to indented JSON.
func (e *JSONExporter) Export(d *diagram.Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// FormatName returns the format name.
func (e *JSONExporter) FormatName() string {
	return "JSON"
}
