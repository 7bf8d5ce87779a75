// Package harness validates the fixed robotics-harness topology: one battery
// pack, one controller, one driver stage and up to two actuators, wired
// through ten named point-to-point slots. It is independent of the generic
// topology analyzer; its shape is known in advance, so connectivity reduces
// to a checklist.
package harness

import (
	"github.com/myteklab/CircuitSim/internal/core/circuit"
	"github.com/myteklab/CircuitSim/internal/core/events"
	"github.com/myteklab/CircuitSim/internal/core/observability/log"
)

// Validator re-derives the harness checklist and its dependent boolean
// states. The full slot scan is gated behind a cheap structural dirty check;
// the derived booleans are recomputed on every call because pin states can
// change without any structural edit.
type Validator struct {
	circuit *circuit.Circuit
	effects events.EffectSink
	logger  log.Log

	// running reports whether the overall simulation is active; actuators
	// never spin in a stopped sandbox.
	running func() bool

	checked        bool
	forced         bool
	lastComponents int
	lastWires      int

	satisfied [SlotCount]bool
}

// New creates a validator over the shared collection. running, sink and
// logger are injected; nil running means "never running".
func New(c *circuit.Circuit, running func() bool, sink events.EffectSink, logger log.Log) *Validator {
	if running == nil {
		running = func() bool { return false }
	}
	if sink == nil {
		sink = events.NopSink{}
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Validator{
		circuit: c,
		effects: sink,
		logger:  logger.With(log.String("component", "harness")),
		running: running,
	}
}

// Invalidate forces the next Validate call to rescan slot connectivity even
// if no structural counts changed. Called when a digital pin is toggled
// through the properties surface.
func (v *Validator) Invalidate() {
	v.forced = true
}

// instances resolves the harness members: first pack, first controller,
// first driver, and the first two actuators in placement order.
type instances struct {
	pack       *circuit.Component
	controller *circuit.Component
	driver     *circuit.Component
	actuators  [2]*circuit.Component
}

func (v *Validator) resolve() instances {
	var ins instances
	ins.pack, _ = v.circuit.FirstOfKind(circuit.KindPack)
	ins.controller, _ = v.circuit.FirstOfKind(circuit.KindController)
	ins.driver, _ = v.circuit.FirstOfKind(circuit.KindDriver)
	acts := v.circuit.AllOfKind(circuit.KindActuator)
	for i := 0; i < len(acts) && i < 2; i++ {
		ins.actuators[i] = acts[i]
	}
	return ins
}

func (ins instances) byRole(r role) *circuit.Component {
	switch r {
	case rolePack:
		return ins.pack
	case roleController:
		return ins.controller
	case roleDriver:
		return ins.driver
	case roleActuatorA:
		return ins.actuators[0]
	case roleActuatorB:
		return ins.actuators[1]
	default:
		return nil
	}
}

// Validate runs one validation pass: rescan connectivity if the structure
// changed, then recompute every derived boolean and the digital-output
// emitter traces.
func (v *Validator) Validate() {
	ins := v.resolve()

	comps, wires := v.circuit.Counts()
	if !v.checked || v.forced || comps != v.lastComponents || wires != v.lastWires {
		v.scanSlots(ins)
		v.checked = true
		v.forced = false
		v.lastComponents = comps
		v.lastWires = wires
	}

	v.deriveStates(ins)
	v.traceDigitalOutputs(ins)
}

// scanSlots re-runs the full 10-slot connectivity check.
func (v *Validator) scanSlots(ins instances) {
	for i, def := range slotDefs {
		v.satisfied[i] = v.slotWired(ins, def)
	}
}

func (v *Validator) slotWired(ins instances, def slotDef) bool {
	a := ins.byRole(def.ARole)
	b := ins.byRole(def.BRole)
	if a == nil || b == nil {
		return false
	}
	epA := circuit.Endpoint{ComponentID: a.ID, Terminal: def.ATerm}
	epB := circuit.Endpoint{ComponentID: b.ID, Terminal: def.BTerm}
	for _, w := range v.circuit.Wires() {
		if w.Connects(epA, epB) {
			return true
		}
	}
	return false
}

// deriveStates recomputes the harness's dependent booleans from the current
// slot states and pin levels. These are owned by the validator; nothing else
// writes them.
func (v *Validator) deriveStates(ins instances) {
	controllerPowered := ins.controller != nil &&
		v.satisfied[SlotPackToControllerPower] && v.satisfied[SlotPackToControllerGround]
	if ins.controller != nil {
		ins.controller.Controller().Powered = controllerPowered
	}

	driverPowered := ins.driver != nil &&
		v.satisfied[SlotPackToDriverPower] && v.satisfied[SlotPackToDriverGround]
	signalA := false
	signalB := false
	if ins.driver != nil {
		dp := ins.driver.Driver()
		dp.Powered = driverPowered
		signalA = v.satisfied[SlotOutAToDriverInA] && controllerPowered && ins.controller.Controller().OutA
		signalB = v.satisfied[SlotOutBToDriverInB] && controllerPowered && ins.controller.Controller().OutB
		dp.SignalA = signalA
		dp.SignalB = signalB
	}

	running := v.running()
	if act := ins.actuators[0]; act != nil {
		act.Actuator().Spinning = running &&
			v.satisfied[SlotDriverToActuatorA1] && v.satisfied[SlotDriverToActuatorA2] &&
			driverPowered && signalA
	}
	if act := ins.actuators[1]; act != nil {
		act.Actuator().Spinning = running &&
			v.satisfied[SlotDriverToActuatorB1] && v.satisfied[SlotDriverToActuatorB2] &&
			driverPowered && signalB
	}
}

// Total returns how many slots apply to the components actually present:
// zero unless pack, controller and driver all exist, then the six base slots
// plus two per present actuator.
func (v *Validator) Total() int {
	ins := v.resolve()
	if ins.pack == nil || ins.controller == nil || ins.driver == nil {
		return 0
	}
	total := baseSlotCount
	for _, act := range ins.actuators {
		if act != nil {
			total += 2
		}
	}
	return total
}

// Progress returns how many applicable slots are currently satisfied.
func (v *Validator) Progress() int {
	if v.Total() == 0 {
		return 0
	}
	ins := v.resolve()
	count := 0
	for i, def := range slotDefs {
		if ins.byRole(def.ARole) == nil || ins.byRole(def.BRole) == nil {
			continue
		}
		if v.satisfied[i] {
			count++
		}
	}
	return count
}

// Slots returns the full checklist for display, in fixed order.
func (v *Validator) Slots() []SlotStatus {
	ins := v.resolve()
	out := make([]SlotStatus, SlotCount)
	for i, def := range slotDefs {
		out[i] = SlotStatus{
			Name:       def.Name,
			Applicable: ins.byRole(def.ARole) != nil && ins.byRole(def.BRole) != nil,
			Satisfied:  v.satisfied[i],
		}
	}
	return out
}
