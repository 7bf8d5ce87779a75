package sandbox

import (
	"github.com/myteklab/CircuitSim/internal/core/circuit"
	"github.com/myteklab/CircuitSim/internal/core/observability/log"
)

// Structural and property mutations. Each records an undo snapshot; no-op
// edits are absorbed by the history digest check. Pin toggles are
// deliberately not snapshotted: pin states are session-transient and never
// round-trip through a document load.

// AddComponent places a component and snapshots.
func (s *Sandbox) AddComponent(kind circuit.Kind, pos circuit.Point) (*circuit.Component, error) {
	comp, err := s.circuit.AddComponent(kind, pos)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("component added",
		log.String("kind", kind.String()),
		log.String("id", string(comp.ID)))
	s.snapshot()
	return comp, nil
}

// MoveComponent repositions a component.
func (s *Sandbox) MoveComponent(id circuit.ComponentID, pos circuit.Point) error {
	comp, ok := s.circuit.Component(id)
	if !ok {
		return circuit.ErrComponentNotFound
	}
	comp.Position = pos
	s.snapshot()
	return nil
}

// RotateComponent advances a component's orientation by the given number of
// 45° steps (may be negative).
func (s *Sandbox) RotateComponent(id circuit.ComponentID, steps int) error {
	comp, ok := s.circuit.Component(id)
	if !ok {
		return circuit.ErrComponentNotFound
	}
	r := (comp.Rotation + steps) % circuit.RotationSteps
	if r < 0 {
		r += circuit.RotationSteps
	}
	comp.Rotation = r
	s.snapshot()
	return nil
}

// RemoveComponent deletes a component, cascading to its wires.
func (s *Sandbox) RemoveComponent(id circuit.ComponentID) error {
	if err := s.circuit.RemoveComponent(id); err != nil {
		return err
	}
	s.validator.Invalidate()
	s.snapshot()
	return nil
}

// AddWire draws a wire between two terminals.
func (s *Sandbox) AddWire(from, to circuit.Endpoint) (*circuit.Wire, error) {
	w, err := s.circuit.AddWire(from, to)
	if err != nil {
		return nil, err
	}
	s.snapshot()
	return w, nil
}

// RemoveWire deletes a wire.
func (s *Sandbox) RemoveWire(id circuit.WireID) error {
	if err := s.circuit.RemoveWire(id); err != nil {
		return err
	}
	s.snapshot()
	return nil
}

// SetSwitch opens or closes a switch.
func (s *Sandbox) SetSwitch(id circuit.ComponentID, closed bool) error {
	comp, ok := s.circuit.Component(id)
	if !ok {
		return circuit.ErrComponentNotFound
	}
	sw := comp.Switch()
	if sw == nil {
		return circuit.ErrUnknownKind
	}
	sw.Closed = closed
	s.snapshot()
	return nil
}

// SetSourceVoltage selects a source's supply voltage by table index.
func (s *Sandbox) SetSourceVoltage(id circuit.ComponentID, index int) error {
	comp, ok := s.circuit.Component(id)
	if !ok {
		return circuit.ErrComponentNotFound
	}
	p := comp.Source()
	if p == nil {
		return circuit.ErrUnknownKind
	}
	p.VoltageIndex = index
	s.snapshot()
	return nil
}

// SetLoadResistance selects a load's resistance by table index.
func (s *Sandbox) SetLoadResistance(id circuit.ComponentID, index int) error {
	comp, ok := s.circuit.Component(id)
	if !ok {
		return circuit.ErrComponentNotFound
	}
	p := comp.Load()
	if p == nil {
		return circuit.ErrUnknownKind
	}
	p.ResistanceIndex = index
	s.snapshot()
	return nil
}

// SetEmitterColor selects an emitter's hue by table index.
func (s *Sandbox) SetEmitterColor(id circuit.ComponentID, index int) error {
	comp, ok := s.circuit.Component(id)
	if !ok {
		return circuit.ErrComponentNotFound
	}
	p := comp.Emitter()
	if p == nil {
		return circuit.ErrUnknownKind
	}
	p.ColorIndex = index
	s.snapshot()
	return nil
}

// SetPin drives a controller digital output high or low. The validator is
// invalidated so its next pass rechecks connectivity unconditionally.
func (s *Sandbox) SetPin(id circuit.ComponentID, channel int, high bool) error {
	comp, ok := s.circuit.Component(id)
	if !ok {
		return circuit.ErrComponentNotFound
	}
	p := comp.Controller()
	if p == nil {
		return circuit.ErrUnknownKind
	}
	p.SetOut(channel, high)
	s.validator.Invalidate()
	return nil
}

// ClearAll empties the canvas.
func (s *Sandbox) ClearAll() {
	s.Stop()
	s.circuit.Clear()
	s.validator.Invalidate()
	s.snapshot()
}

func (s *Sandbox) snapshot() {
	if err := s.history.Push(s.circuit.ToDocument()); err != nil {
		s.logger.Error("snapshot failed", log.Error(err))
	}
}
