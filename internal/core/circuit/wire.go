package circuit

// Endpoint names one side of a wire: a component and one of its terminals.
type Endpoint struct {
	ComponentID ComponentID
	Terminal    string
}

// Wire connects exactly two endpoints. It is undirected for topology, but
// From/To orientation is preserved because rectifier bias checks depend on
// which named terminal a wire lands on.
//
// Current is derived, rewritten each tick. Resistance is the fixed ideal-wire
// epsilon. Waypoints are routing hints for rendering only.
type Wire struct {
	ID   WireID
	From Endpoint
	To   Endpoint

	Current    float64
	Resistance float64

	Waypoints []Point
}

// Touches reports whether either endpoint references the component.
func (w *Wire) Touches(id ComponentID) bool {
	return w.From.ComponentID == id || w.To.ComponentID == id
}

// EndFor returns the endpoint attached to the given component.
func (w *Wire) EndFor(id ComponentID) (Endpoint, bool) {
	if w.From.ComponentID == id {
		return w.From, true
	}
	if w.To.ComponentID == id {
		return w.To, true
	}
	return Endpoint{}, false
}

// OtherEnd returns the endpoint opposite the given component.
func (w *Wire) OtherEnd(id ComponentID) (Endpoint, bool) {
	if w.From.ComponentID == id {
		return w.To, true
	}
	if w.To.ComponentID == id {
		return w.From, true
	}
	return Endpoint{}, false
}

// Connects reports whether the wire joins the two named terminals, in either
// direction.
func (w *Wire) Connects(a, b Endpoint) bool {
	if w.From == a && w.To == b {
		return true
	}
	return w.From == b && w.To == a
}
