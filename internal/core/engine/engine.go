// Package engine converts discovered paths into concrete voltage, current
// and damage values. Each path is computed independently with a direct
// series-resistance approximation; there is no nodal solve, and when paths
// share a component the last path processed wins. That approximation is the
// specified behavior of the sandbox, not an accident.
package engine

import (
	"github.com/myteklab/CircuitSim/internal/core/circuit"
	"github.com/myteklab/CircuitSim/internal/core/events"
	"github.com/myteklab/CircuitSim/internal/core/observability/log"
	"github.com/myteklab/CircuitSim/internal/core/topology"
)

const (
	// MinResistance is the floor a path's total series resistance is clamped
	// to. A bare source-to-ground wire is a short circuit, not a division by
	// zero.
	MinResistance = 0.1

	// emitterNominalCurrent folds an emitter's fixed forward drop into an
	// equivalent series resistance (Vf / 20 mA).
	emitterNominalCurrent = 0.020
	// rectifierNominalCurrent does the same for rectifiers (Vf / 50 mA).
	rectifierNominalCurrent = 0.050

	// HighCurrentThreshold is the source current above which the engine
	// raises an overcurrent warning, in amps.
	HighCurrentThreshold = 1.0
)

// PathSnapshot is the most recently computed path's electrical summary,
// exposed for display. With multiple paths only the last one processed is
// visible here.
type PathSnapshot struct {
	Voltage    float64
	Current    float64
	Resistance float64
	Power      float64
}

// Engine recomputes all electrical state from scratch each tick. It reads
// the shared circuit collection and writes back only derived scalar fields;
// it owns no entity lifecycle.
type Engine struct {
	circuit *circuit.Circuit
	topo    *topology.Analyzer
	effects events.EffectSink
	logger  log.Log

	running   bool
	pathCount int
	lastPath  PathSnapshot
}

// New creates an engine over the shared collection. The effect sink and
// logger are injected; nil means discard.
func New(c *circuit.Circuit, topo *topology.Analyzer, sink events.EffectSink, logger log.Log) *Engine {
	if sink == nil {
		sink = events.NopSink{}
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Engine{
		circuit: c,
		topo:    topo,
		effects: sink,
		logger:  logger.With(log.String("component", "engine")),
	}
}

// Running reports whether simulation is active.
func (e *Engine) Running() bool {
	return e.running
}

// Start enters the running state. All damage flags are force-cleared before
// the first tick; damage is only ever visible while continuously running.
func (e *Engine) Start() {
	e.circuit.ClearDamage()
	e.running = true
	e.logger.Info("simulation started")
}

// Stop leaves the running state, zeroes every derived field and heals all
// damage. Calling it twice is the same as calling it once.
func (e *Engine) Stop() {
	e.running = false
	e.circuit.ResetDerived()
	e.circuit.ClearDamage()
	e.pathCount = 0
	e.lastPath = PathSnapshot{}
	e.logger.Info("simulation stopped")
}

// Simulate runs one full tick: reset derived state, rediscover paths, and
// compute each path's current, voltage drops and damage.
func (e *Engine) Simulate() {
	if !e.running {
		return
	}

	e.circuit.ResetDerived()

	paths := e.topo.FindAllPaths()
	e.pathCount = len(paths)

	for _, p := range paths {
		e.computePath(p)
	}
}

func (e *Engine) computePath(p topology.Path) {
	src := p.Source()
	if src == nil || src.Source() == nil {
		return
	}

	total := SeriesResistance(p)
	voltage := src.Source().Voltage()
	current := voltage / total

	// Current is written onto every member; shared components keep the value
	// from whichever path ran last.
	for _, comp := range p.Components {
		comp.Current = current
		if em := comp.Emitter(); em != nil {
			em.Drive = circuit.DriveEngine
		}
	}
	for _, w := range p.Wires {
		w.Current = current
	}

	e.lastPath = PathSnapshot{
		Voltage:    voltage,
		Current:    current,
		Resistance: total,
		Power:      voltage * current,
	}

	e.assignVoltages(p, current)
	e.checkLimits(p, current)
}

// SeriesResistance sums the path's series resistance: ohmic loads at their
// nominal value, emitters and rectifiers as fixed-drop equivalents, wires at
// their epsilon. Clamped to MinResistance.
func SeriesResistance(p topology.Path) float64 {
	total := 0.0
	for i, comp := range p.Components {
		if i == 0 || comp.Kind == circuit.KindGround || comp.Kind == circuit.KindSource {
			continue
		}
		switch {
		case comp.Load() != nil:
			total += comp.Load().Resistance()
		case comp.Emitter() != nil:
			total += comp.Emitter().ForwardVoltage / emitterNominalCurrent
		case comp.Rectifier() != nil:
			total += comp.Rectifier().ForwardVoltage / rectifierNominalCurrent
		}
	}
	for _, w := range p.Wires {
		total += w.Resistance
	}
	if total < MinResistance {
		total = MinResistance
	}
	return total
}

// assignVoltages walks the path a second time and distributes drops: the
// source holds its supply voltage, ground is clamped to zero, fixed-drop
// devices drop their forward voltage regardless of current magnitude, and
// ohmic loads drop I·R.
func (e *Engine) assignVoltages(p topology.Path, current float64) {
	for i, comp := range p.Components {
		switch {
		case i == 0:
			comp.Voltage = comp.Source().Voltage()
		case comp.Kind == circuit.KindGround:
			comp.Voltage = 0
		case comp.Emitter() != nil:
			comp.Voltage = comp.Emitter().ForwardVoltage
		case comp.Rectifier() != nil:
			comp.Voltage = comp.Rectifier().ForwardVoltage
		case comp.Load() != nil:
			r := comp.Load().Resistance()
			comp.Voltage = current * r
			// dissipation ratio feeds the presentation-only temperature
			comp.Temperature = current * current * r / comp.Load().BurnoutPower
		}
	}
}

// checkLimits flags damage the first time a safe operating limit is crossed
// and emits one damage effect per newly damaged component.
func (e *Engine) checkLimits(p topology.Path, current float64) {
	for i, comp := range p.Components {
		if i == 0 || comp.Damaged {
			continue
		}
		switch {
		case comp.Emitter() != nil:
			if current > comp.Emitter().BurnoutCurrent {
				e.damage(comp, events.EffectExplosionFlash, comp.Emitter().Color())
			}
		case comp.Rectifier() != nil:
			if current > comp.Rectifier().BurnoutCurrent {
				e.damage(comp, events.EffectSparkBurst, "")
			}
		case comp.Load() != nil:
			if current*current*comp.Load().Resistance() > comp.Load().BurnoutPower {
				e.damage(comp, events.EffectSmokePlume, "")
			}
		}
	}
}

func (e *Engine) damage(comp *circuit.Component, kind events.EffectKind, color string) {
	comp.Damaged = true
	e.effects.Emit(events.DamageEffect{
		Component: comp.ID,
		Position:  comp.Position,
		Effect:    kind,
		Color:     color,
	})
	e.logger.Warn("component damaged",
		log.String("id", string(comp.ID)),
		log.String("kind", comp.Kind.String()),
		log.Float64("current", comp.Current))
}

// LastPath returns the display snapshot of the last path processed.
func (e *Engine) LastPath() PathSnapshot {
	return e.lastPath
}
