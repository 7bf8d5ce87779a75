package topology

import "github.com/myteklab/CircuitSim/internal/core/circuit"

// Path is an ordered, wire-disjoint route from a source component to a valid
// terminus: a ground, or the originating source itself (closed loop).
// Components holds the vertex sequence including both ends; Wires holds the
// edge sequence, so len(Wires) == len(Components)-1.
type Path struct {
	Components []*circuit.Component
	Wires      []*circuit.Wire
}

// Source returns the originating source component.
func (p Path) Source() *circuit.Component {
	if len(p.Components) == 0 {
		return nil
	}
	return p.Components[0]
}

// Terminus returns the final component of the path.
func (p Path) Terminus() *circuit.Component {
	if len(p.Components) == 0 {
		return nil
	}
	return p.Components[len(p.Components)-1]
}

// IsLoop reports whether the path closes back on its own source rather than
// ending at a ground.
func (p Path) IsLoop() bool {
	return len(p.Components) > 1 && p.Terminus() == p.Source()
}

// Contains reports whether any path member is of the given kind.
func (p Path) Contains(kind circuit.Kind) bool {
	for _, c := range p.Components {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

// ContainsComponent reports whether the component appears on the path.
func (p Path) ContainsComponent(id circuit.ComponentID) bool {
	for _, c := range p.Components {
		if c.ID == id {
			return true
		}
	}
	return false
}
