package sandbox

import "github.com/myteklab/CircuitSim/internal/core/circuit"

// SaveDocument serializes the current canvas.
func (s *Sandbox) SaveDocument() circuit.Document {
	return s.circuit.ToDocument()
}

// LoadDocument replaces the canvas with a document's contents. A running
// simulation is force-stopped first so the restore never lands mid-tick,
// and the load becomes the new undo baseline.
func (s *Sandbox) LoadDocument(doc circuit.Document) error {
	s.Stop()
	if err := s.circuit.Load(doc); err != nil {
		return err
	}
	s.validator.Invalidate()
	s.snapshot()
	return nil
}

// Undo restores the previous snapshot. Restoring stops a running
// simulation first.
func (s *Sandbox) Undo() bool {
	doc, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(doc)
	return true
}

// Redo reapplies the most recently undone snapshot.
func (s *Sandbox) Redo() bool {
	doc, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(doc)
	return true
}

func (s *Sandbox) restore(doc circuit.Document) {
	s.Stop()
	// Snapshots are self-produced; a decode that survived history cannot
	// fail structural load.
	_ = s.circuit.Load(doc)
	s.validator.Invalidate()
}
