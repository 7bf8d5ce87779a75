package harness

import (
	"github.com/myteklab/CircuitSim/internal/core/circuit"
	"github.com/myteklab/CircuitSim/internal/core/events"
	"github.com/myteklab/CircuitSim/internal/core/observability/log"
)

// LogicVoltage is the fixed level of a high digital output pin.
const LogicVoltage = 3.3

// digital output channels in checklist order: channel 0 is pin d2, channel 1
// is pin d3.
var outputPins = [2]string{"d2", "d3"}

// traceDigitalOutputs runs the secondary sub-protocol: emitters driven
// directly from controller pins, bypassing the electrical engine. Exactly
// two path shapes are accepted per pin:
//
//	pin -> load -> emitter anode..cathode -> controller ground
//	pin -> emitter anode..cathode -> load -> controller ground
//
// The computed current is written straight onto the emitter with a
// validator provenance marker so it can be cleanly zeroed once the path
// stops being valid.
func (v *Validator) traceDigitalOutputs(ins instances) {
	// Provenance is resolved up front: anything the validator drove last
	// pass goes dark unless a trace below lights it again.
	for _, comp := range v.circuit.Components() {
		if em := comp.Emitter(); em != nil && em.Drive == circuit.DriveValidator {
			comp.Current = 0
			em.On = false
			em.Brightness = 0
			em.Drive = circuit.DriveNone
		}
	}

	if ins.controller == nil || !ins.controller.Controller().Powered {
		return
	}
	for ch, pin := range outputPins {
		if ins.controller.Controller().Out(ch) {
			v.tracePin(ins.controller, pin)
		}
	}
}

func (v *Validator) tracePin(ctrl *circuit.Component, pin string) {
	gnd := circuit.Endpoint{ComponentID: ctrl.ID, Terminal: "gnd"}

	for _, first := range v.neighborsAt(circuit.Endpoint{ComponentID: ctrl.ID, Terminal: pin}) {
		comp, ok := v.circuit.Component(first.ComponentID)
		if !ok || comp.Damaged {
			continue
		}

		// Shape 1: pin -> load -> emitter -> ground.
		if load := comp.Load(); load != nil {
			otherT := otherLoadTerminal(first.Terminal)
			if otherT == "" {
				continue
			}
			for _, second := range v.neighborsAt(circuit.Endpoint{ComponentID: comp.ID, Terminal: otherT}) {
				if second.Terminal != "anode" {
					continue
				}
				em, ok := v.circuit.Component(second.ComponentID)
				if !ok || em.Emitter() == nil || em.Damaged {
					continue
				}
				if v.wiredTo(circuit.Endpoint{ComponentID: em.ID, Terminal: "cathode"}, gnd) {
					v.driveEmitter(em, load.Resistance())
					return
				}
			}
			continue
		}

		// Shape 2: pin -> emitter -> load -> ground.
		if comp.Emitter() != nil && first.Terminal == "anode" {
			for _, second := range v.neighborsAt(circuit.Endpoint{ComponentID: comp.ID, Terminal: "cathode"}) {
				loadComp, ok := v.circuit.Component(second.ComponentID)
				if !ok || loadComp.Load() == nil || loadComp.Damaged {
					continue
				}
				otherT := otherLoadTerminal(second.Terminal)
				if otherT == "" {
					continue
				}
				if v.wiredTo(circuit.Endpoint{ComponentID: loadComp.ID, Terminal: otherT}, gnd) {
					v.driveEmitter(comp, loadComp.Load().Resistance())
					return
				}
			}
		}
	}
}

// neighborsAt returns the far endpoint of every wire attached to exactly
// this terminal, in either wire direction.
func (v *Validator) neighborsAt(ep circuit.Endpoint) []circuit.Endpoint {
	var out []circuit.Endpoint
	for _, w := range v.circuit.Wires() {
		switch {
		case w.From == ep:
			out = append(out, w.To)
		case w.To == ep:
			out = append(out, w.From)
		}
	}
	return out
}

// wiredTo reports whether any wire joins the two terminals directly.
func (v *Validator) wiredTo(a, b circuit.Endpoint) bool {
	for _, w := range v.circuit.Wires() {
		if w.Connects(a, b) {
			return true
		}
	}
	return false
}

func otherLoadTerminal(t string) string {
	switch t {
	case "a":
		return "b"
	case "b":
		return "a"
	default:
		return ""
	}
}

// driveEmitter writes the traced drive current onto the emitter, marking the
// validator as its provenance, and applies the burnout limit.
func (v *Validator) driveEmitter(comp *circuit.Component, resistance float64) {
	em := comp.Emitter()

	current := (LogicVoltage - em.ForwardVoltage) / resistance
	if current < 0 {
		current = 0
	}

	comp.Current = current
	em.Drive = circuit.DriveValidator
	em.On = current > 0
	em.Brightness = current / em.MaxSafeCurrent
	if em.Brightness > 1 {
		em.Brightness = 1
	}

	if current > em.BurnoutCurrent {
		comp.Damaged = true
		em.On = false
		em.Brightness = 0
		v.effects.Emit(events.DamageEffect{
			Component: comp.ID,
			Position:  comp.Position,
			Effect:    events.EffectExplosionFlash,
			Color:     em.Color(),
		})
		v.logger.Warn("emitter burned out by digital output",
			log.String("id", string(comp.ID)),
			log.Float64("current", current))
	}
}
