package circuit

import "fmt"

// Circuit owns the live component and wire collections. It is deliberately
// not safe for concurrent use: per the simulation's execution model, user
// handlers, the engine and the validator all run on a single tick context,
// and structural mutation never happens mid-tick.
type Circuit struct {
	components []*Component
	wires      []*Wire

	byID     map[ComponentID]*Component
	wireByID map[WireID]*Wire
}

// New creates an empty circuit.
func New() *Circuit {
	return &Circuit{
		byID:     make(map[ComponentID]*Component),
		wireByID: make(map[WireID]*Wire),
	}
}

// AddComponent places a new component of the given kind with its default
// kind-specific payload.
func (c *Circuit) AddComponent(kind Kind, pos Point) (*Component, error) {
	spec, ok := SpecFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	comp := &Component{
		ID:       NewComponentID(),
		Kind:     kind,
		Position: pos,
		Props:    spec.NewProps(),
	}
	c.put(comp)
	return comp, nil
}

// put inserts a fully built component, as during deserialization.
func (c *Circuit) put(comp *Component) {
	c.components = append(c.components, comp)
	c.byID[comp.ID] = comp
}

// RemoveComponent deletes a component and cascades to every wire that
// references it.
func (c *Circuit) RemoveComponent(id ComponentID) error {
	if _, ok := c.byID[id]; !ok {
		return ErrComponentNotFound
	}
	delete(c.byID, id)
	kept := c.components[:0]
	for _, comp := range c.components {
		if comp.ID != id {
			kept = append(kept, comp)
		}
	}
	c.components = kept

	keptWires := c.wires[:0]
	for _, w := range c.wires {
		if w.Touches(id) {
			delete(c.wireByID, w.ID)
			continue
		}
		keptWires = append(keptWires, w)
	}
	c.wires = keptWires
	return nil
}

// AddWire connects two named terminals. Both endpoints must resolve to an
// existing component and terminal.
func (c *Circuit) AddWire(from, to Endpoint) (*Wire, error) {
	if from == to {
		return nil, ErrSelfWire
	}
	for _, ep := range []Endpoint{from, to} {
		comp, ok := c.byID[ep.ComponentID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrComponentNotFound, ep.ComponentID)
		}
		if _, ok := comp.Terminal(ep.Terminal); !ok {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnknownTerminal, comp.Kind, ep.Terminal)
		}
	}
	w := &Wire{
		ID:         NewWireID(),
		From:       from,
		To:         to,
		Resistance: WireResistance,
	}
	c.wires = append(c.wires, w)
	c.wireByID[w.ID] = w
	return w, nil
}

// RemoveWire deletes a wire by id.
func (c *Circuit) RemoveWire(id WireID) error {
	if _, ok := c.wireByID[id]; !ok {
		return ErrWireNotFound
	}
	delete(c.wireByID, id)
	kept := c.wires[:0]
	for _, w := range c.wires {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	c.wires = kept
	return nil
}

// Clear removes every component and wire.
func (c *Circuit) Clear() {
	c.components = nil
	c.wires = nil
	c.byID = make(map[ComponentID]*Component)
	c.wireByID = make(map[WireID]*Wire)
}

// Component resolves a component by id.
func (c *Circuit) Component(id ComponentID) (*Component, bool) {
	comp, ok := c.byID[id]
	return comp, ok
}

// Wire resolves a wire by id.
func (c *Circuit) Wire(id WireID) (*Wire, bool) {
	w, ok := c.wireByID[id]
	return w, ok
}

// Components returns the live component slice in placement order. Callers
// must not mutate the slice structure.
func (c *Circuit) Components() []*Component {
	return c.components
}

// Wires returns the live wire slice in creation order.
func (c *Circuit) Wires() []*Wire {
	return c.wires
}

// WiresAt returns every wire incident to the component, in creation order.
func (c *Circuit) WiresAt(id ComponentID) []*Wire {
	var out []*Wire
	for _, w := range c.wires {
		if w.Touches(id) {
			out = append(out, w)
		}
	}
	return out
}

// AllOfKind returns every component of the given kind, in placement order.
func (c *Circuit) AllOfKind(kind Kind) []*Component {
	var out []*Component
	for _, comp := range c.components {
		if comp.Kind == kind {
			out = append(out, comp)
		}
	}
	return out
}

// FirstOfKind returns the earliest-placed component of the given kind.
func (c *Circuit) FirstOfKind(kind Kind) (*Component, bool) {
	for _, comp := range c.components {
		if comp.Kind == kind {
			return comp, true
		}
	}
	return nil, false
}

// Counts reports component and wire counts, the validator's cheap
// structural dirty check.
func (c *Circuit) Counts() (components, wires int) {
	return len(c.components), len(c.wires)
}

// ResetDerived zeroes every derived electrical field. Damage flags and
// controller pin states are preserved.
func (c *Circuit) ResetDerived() {
	for _, comp := range c.components {
		comp.ResetDerived()
	}
	for _, w := range c.wires {
		w.Current = 0
	}
}

// ClearDamage unsets every damage flag. Issued when simulation starts or
// stops; nothing else heals a damaged component.
func (c *Circuit) ClearDamage() {
	for _, comp := range c.components {
		comp.Damaged = false
	}
}
