package server

import "github.com/myteklab/CircuitSim/internal/core/circuit"

// buildFrame assembles one derived-state broadcast from the just-completed
// tick.
func (s *Server) buildFrame() Frame {
	box := s.sandbox
	_, activeWires := box.Topology().ActiveSet()

	comps := box.Circuit().Components()
	views := make([]ComponentView, 0, len(comps))
	for _, comp := range comps {
		views = append(views, componentView(comp))
	}

	wires := box.Circuit().Wires()
	wireViews := make([]WireView, 0, len(wires))
	for _, w := range wires {
		wireViews = append(wireViews, WireView{
			ID:      string(w.ID),
			From:    circuit.EndpointDoc{ComponentID: string(w.From.ComponentID), Terminal: w.From.Terminal},
			To:      circuit.EndpointDoc{ComponentID: string(w.To.ComponentID), Terminal: w.To.Terminal},
			Current: w.Current,
			Active:  activeWires[w.ID],
		})
	}

	effects := make([]EffectView, 0, len(s.effects))
	for _, e := range s.effects {
		effects = append(effects, EffectView{
			ComponentID: string(e.Component),
			X:           e.Position.X,
			Y:           e.Position.Y,
			Effect:      e.Effect.String(),
			Color:       e.Color,
		})
	}
	s.effects = nil

	val := box.Validator()
	return Frame{
		Type:       "frame",
		Running:    box.Running(),
		Components: views,
		Wires:      wireViews,
		Statistics: box.Engine().Stats(),
		Problems:   box.Engine().Problems(),
		LastPath:   box.Engine().LastPath(),
		Harness: HarnessView{
			Progress: val.Progress(),
			Total:    val.Total(),
			Slots:    val.Slots(),
		},
		Effects: effects,
	}
}

func componentView(comp *circuit.Component) ComponentView {
	v := ComponentView{
		ID:          string(comp.ID),
		Kind:        comp.Kind.String(),
		X:           comp.Position.X,
		Y:           comp.Position.Y,
		Rotation:    comp.Rotation,
		Damaged:     comp.Damaged,
		Current:     comp.Current,
		Voltage:     comp.Voltage,
		Temperature: comp.Temperature,
	}
	switch {
	case comp.Emitter() != nil:
		em := comp.Emitter()
		color := em.Color()
		v.On = &em.On
		v.Brightness = &em.Brightness
		v.Color = &color
	case comp.Switch() != nil:
		v.Closed = &comp.Switch().Closed
	case comp.Controller() != nil:
		cp := comp.Controller()
		v.Powered = &cp.Powered
		v.OutA = &cp.OutA
		v.OutB = &cp.OutB
	case comp.Driver() != nil:
		v.Powered = &comp.Driver().Powered
	case comp.Actuator() != nil:
		v.Spinning = &comp.Actuator().Spinning
	}
	return v
}
