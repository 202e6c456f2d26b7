// Package store persists diagrams through a small string key-value
// contract. The editor core only ever writes one key; the backends behind
// the interface are interchangeable (a flat file for simple setups, sqlite
// for anything that wants transactional writes).
package store

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"doodle/diagram"
)

// DiagramKey is the single key the editor persists its diagram under.
const DiagramKey = "doodle.diagram"

// Store is a string key-value store. Get reports presence explicitly so an
// absent key is distinguishable from an empty value.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
	Close() error
}

// SaveDiagram serializes the diagram and writes it under DiagramKey.
func SaveDiagram(s Store, d *diagram.Diagram) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode diagram: %w", err)
	}
	if err := s.Put(DiagramKey, string(data)); err != nil {
		return fmt.Errorf("store diagram: %w", err)
	}
	return nil
}

// LoadDiagram reads the persisted diagram. Absent or unreadable state falls
// back to the seeded default diagram; that path is logged and never
// surfaced as a failure. Dangling edges in persisted data are kept as-is —
// renderers skip them at resolution time.
func LoadDiagram(s Store, projectName string, logger *zap.Logger) *diagram.Diagram {
	if logger == nil {
		logger = zap.NewNop()
	}
	value, ok, err := s.Get(DiagramKey)
	if err != nil {
		logger.Warn("load diagram failed, starting fresh", zap.Error(err))
		return diagram.Seed(projectName)
	}
	if !ok {
		return diagram.Seed(projectName)
	}
	var d diagram.Diagram
	if err := json.Unmarshal([]byte(value), &d); err != nil {
		logger.Warn("persisted diagram unreadable, starting fresh", zap.Error(err))
		return diagram.Seed(projectName)
	}
	if d.ProjectName == "" {
		d.ProjectName = projectName
	}
	return &d
}

// DiagramSaver adapts a Store to the editor's Saver interface.
type DiagramSaver struct {
	Store Store
}

// SaveDiagram implements editor.Saver.
func (ds DiagramSaver) SaveDiagram(d *diagram.Diagram) error {
	return SaveDiagram(ds.Store, d)
}
