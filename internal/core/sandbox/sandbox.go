// Package sandbox orchestrates one interactive circuit session: the shared
// component/wire collection, the electrical engine, the wiring validator,
// and the undo/redo history, driven by a single cooperative tick.
//
// Tick order is load-bearing: engine recompute (when running), then
// validator pass, then presentation update, so presentation always observes
// the current tick's electrical results.
package sandbox

import (
	"github.com/myteklab/CircuitSim/internal/core/circuit"
	"github.com/myteklab/CircuitSim/internal/core/engine"
	"github.com/myteklab/CircuitSim/internal/core/events"
	"github.com/myteklab/CircuitSim/internal/core/events/bus"
	"github.com/myteklab/CircuitSim/internal/core/harness"
	"github.com/myteklab/CircuitSim/internal/core/history"
	"github.com/myteklab/CircuitSim/internal/core/observability/log"
	"github.com/myteklab/CircuitSim/internal/core/topology"
)

// Options configures a sandbox session.
type Options struct {
	HistoryLimit int
	Logger       log.Log
	Bus          bus.EventBus
}

// Sandbox owns the session. All methods must be called from the same
// execution context as Tick; nothing here locks.
type Sandbox struct {
	circuit   *circuit.Circuit
	topo      *topology.Analyzer
	engine    *engine.Engine
	validator *harness.Validator
	history   *history.Buffer
	bus       bus.EventBus
	logger    log.Log
}

// New wires a session together. The engine and validator receive the shared
// collection and a bus-backed damage-effect sink at construction; they never
// reach into globals.
func New(opts Options) *Sandbox {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	eventBus := opts.Bus
	if eventBus == nil {
		eventBus = bus.New()
	}

	c := circuit.New()
	topo := topology.New(c)
	eng := engine.New(c, topo, events.NewBusSink(eventBus, "engine"), logger)
	val := harness.New(c, eng.Running, events.NewBusSink(eventBus, "harness"), logger)
	hist := history.New(opts.HistoryLimit, logger)

	s := &Sandbox{
		circuit:   c,
		topo:      topo,
		engine:    eng,
		validator: val,
		history:   hist,
		bus:       eventBus,
		logger:    logger.With(log.String("component", "sandbox")),
	}
	// Seed history with the empty canvas so the first user edit is undoable.
	_ = hist.Push(c.ToDocument())
	return s
}

// Circuit exposes the shared collection to collaborators.
func (s *Sandbox) Circuit() *circuit.Circuit { return s.circuit }

// Topology exposes the path analyzer.
func (s *Sandbox) Topology() *topology.Analyzer { return s.topo }

// Engine exposes the electrical engine.
func (s *Sandbox) Engine() *engine.Engine { return s.engine }

// Validator exposes the wiring validator.
func (s *Sandbox) Validator() *harness.Validator { return s.validator }

// Bus exposes the session event bus.
func (s *Sandbox) Bus() bus.EventBus { return s.bus }

// History exposes the undo/redo buffer.
func (s *Sandbox) History() *history.Buffer { return s.history }

// Running reports whether simulation is active.
func (s *Sandbox) Running() bool { return s.engine.Running() }

// Start begins simulation. Damage is force-cleared before the first tick.
func (s *Sandbox) Start() { s.engine.Start() }

// Stop halts simulation, zeroing derived state and healing damage.
func (s *Sandbox) Stop() { s.engine.Stop() }

// Tick runs one cooperative frame: engine, validator, presentation.
func (s *Sandbox) Tick() {
	s.engine.Simulate()
	s.validator.Validate()
	s.updatePresentation()
}

// updatePresentation derives the visual state from the tick's electrical
// results. Validator-driven emitters are left alone; their on-state was just
// written by the trace.
func (s *Sandbox) updatePresentation() {
	for _, comp := range s.circuit.Components() {
		em := comp.Emitter()
		if em == nil || em.Drive != circuit.DriveEngine {
			continue
		}
		on := !comp.Damaged && comp.Current > 0
		em.On = on
		if !on {
			em.Brightness = 0
			continue
		}
		b := comp.Current / em.MaxSafeCurrent
		if b > 1 {
			b = 1
		}
		em.Brightness = b
	}
}
