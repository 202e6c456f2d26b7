package editor

import (
	"doodle/diagram"

	"go.uber.org/zap"
)

// Exporter is the contract export adapters implement. It matches
// export.Exporter; the editor depends only on this interface so the export
// package stays a consumer of the model, not a peer of the editor.
type Exporter interface {
	Export(d *diagram.Diagram) ([]byte, error)
	FileExtension() string
	FormatName() string
}

// Export captures the current diagram through an exporter. Any open edit
// session is committed first and the selection is cleared so the captured
// surface is clean, then restored whether or not the export succeeded.
// Export failures leave the model untouched and are returned for the
// frontend to surface.
func (e *Editor) Export(exp Exporter) ([]byte, error) {
	e.CloseEdit()

	kind, id := e.selectedKind, e.selectedID
	e.ClearSelection()
	defer func() {
		e.selectedKind, e.selectedID = kind, id
	}()

	out, err := exp.Export(e.diagram)
	if err != nil {
		e.log.Error("export failed", zap.String("format", exp.FormatName()), zap.Error(err))
		return nil, err
	}
	return out, nil
}
