// Package topology discovers conducting paths through the live circuit
// graph. Vertices are components, edges are wires; a valid path runs from a
// source to a ground or back to the same source, never repeating a wire.
package topology

import (
	"sort"
	"strings"

	"github.com/myteklab/CircuitSim/internal/core/circuit"
)

// Analyzer runs path discovery over a shared circuit collection. It holds no
// state between calls; every query re-reads the collection.
type Analyzer struct {
	circuit *circuit.Circuit
}

// New creates an analyzer over the given collection.
func New(c *circuit.Circuit) *Analyzer {
	return &Analyzer{circuit: c}
}

// Sources returns every source-kind component.
func (a *Analyzer) Sources() []*circuit.Component {
	return a.circuit.AllOfKind(circuit.KindSource)
}

// Grounds returns every reference-ground component.
func (a *Analyzer) Grounds() []*circuit.Component {
	return a.circuit.AllOfKind(circuit.KindGround)
}

// IsComplete reports whether at least one valid path exists.
func (a *Analyzer) IsComplete() bool {
	return len(a.FindAllPaths()) > 0
}

// FindAllPaths enumerates every simple conducting path from every source.
// Traversal is an explicit-stack depth-first search: recursion depth would
// otherwise be unbounded by path length in pathological wiring. Paths that
// would push current into a rectifier's cathode are discarded after
// enumeration.
func (a *Analyzer) FindAllPaths() []Path {
	var out []Path
	for _, src := range a.Sources() {
		out = append(out, a.pathsFrom(src)...)
	}
	return out
}

// frame is one level of the iterative DFS: a vertex plus a cursor into its
// incident wire list.
type frame struct {
	comp *circuit.Component
	next int
}

func (a *Analyzer) pathsFrom(src *circuit.Component) []Path {
	if src.Damaged {
		return nil
	}

	var found []Path

	stack := []frame{{comp: src}}
	onPath := map[circuit.ComponentID]bool{src.ID: true}
	usedWire := make(map[circuit.WireID]bool)
	var pathWires []*circuit.Wire

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		incident := a.circuit.WiresAt(top.comp.ID)

		if top.next >= len(incident) {
			// Exhausted this vertex: backtrack.
			stack = stack[:len(stack)-1]
			delete(onPath, top.comp.ID)
			if len(pathWires) > 0 {
				last := pathWires[len(pathWires)-1]
				delete(usedWire, last.ID)
				pathWires = pathWires[:len(pathWires)-1]
			}
			continue
		}

		w := incident[top.next]
		top.next++

		if usedWire[w.ID] {
			continue
		}
		end, ok := w.OtherEnd(top.comp.ID)
		if !ok {
			continue
		}
		neighbor, ok := a.circuit.Component(end.ComponentID)
		if !ok {
			continue
		}

		// Rejection rules: damage on either side of the edge and open
		// switches block traversal entirely.
		if top.comp.Damaged || neighbor.Damaged {
			continue
		}
		if sw := neighbor.Switch(); sw != nil && !sw.Closed {
			continue
		}

		if onPath[neighbor.ID] {
			// The only permitted revisit is closing the loop back onto the
			// originating source once at least one other component has been
			// traversed.
			if neighbor.ID == src.ID && len(stack) > 1 {
				p := Path{
					Components: componentsOf(stack),
					Wires:      append(append([]*circuit.Wire(nil), pathWires...), w),
				}
				p.Components = append(p.Components, neighbor)
				found = append(found, p)
			}
			continue
		}

		if neighbor.Kind == circuit.KindGround {
			p := Path{
				Components: componentsOf(stack),
				Wires:      append(append([]*circuit.Wire(nil), pathWires...), w),
			}
			p.Components = append(p.Components, neighbor)
			found = append(found, p)
			continue
		}

		usedWire[w.ID] = true
		pathWires = append(pathWires, w)
		onPath[neighbor.ID] = true
		stack = append(stack, frame{comp: neighbor})
	}

	return dedupeLoops(filterReverseBiased(found))
}

// dedupeLoops keeps one orientation per closed loop. The undirected walk
// discovers every ground-free loop twice, once per traversal direction; the
// wire set identifies the loop regardless of direction. Must run after bias
// filtering: with a rectifier on the loop only one orientation is valid, and
// that is the one that has to survive.
func dedupeLoops(paths []Path) []Path {
	var seen map[string]bool
	kept := paths[:0]
	for _, p := range paths {
		if p.IsLoop() {
			if seen == nil {
				seen = make(map[string]bool)
			}
			key := wireSetKey(p.Wires)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		kept = append(kept, p)
	}
	return kept
}

func wireSetKey(wires []*circuit.Wire) string {
	ids := make([]string, len(wires))
	for i, w := range wires {
		ids[i] = string(w.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

func componentsOf(stack []frame) []*circuit.Component {
	out := make([]*circuit.Component, len(stack))
	for i, f := range stack {
		out[i] = f.comp
	}
	return out
}

// filterReverseBiased drops every path containing a rectifier entered at its
// cathode. The check runs post-hoc over completed paths; pruning during
// traversal would be an equivalent optimization but the accepted set must
// not change.
func filterReverseBiased(paths []Path) []Path {
	kept := paths[:0]
	for _, p := range paths {
		if pathForwardBiased(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

func pathForwardBiased(p Path) bool {
	for i := 1; i < len(p.Components); i++ {
		comp := p.Components[i]
		if comp.Rectifier() == nil {
			continue
		}
		entry, ok := p.Wires[i-1].EndFor(comp.ID)
		if !ok {
			return false
		}
		if entry.Terminal == "cathode" {
			return false
		}
	}
	return true
}

// ActiveSet returns the components and wires touched by at least one valid
// path. Used for dead-component presentation, never to gate electrical
// computation.
func (a *Analyzer) ActiveSet() (map[circuit.ComponentID]bool, map[circuit.WireID]bool) {
	comps := make(map[circuit.ComponentID]bool)
	wires := make(map[circuit.WireID]bool)
	for _, p := range a.FindAllPaths() {
		for _, c := range p.Components {
			comps[c.ID] = true
		}
		for _, w := range p.Wires {
			wires[w.ID] = true
		}
	}
	return comps, wires
}
