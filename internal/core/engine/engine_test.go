package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myteklab/CircuitSim/internal/core/circuit"
	"github.com/myteklab/CircuitSim/internal/core/events"
	"github.com/myteklab/CircuitSim/internal/core/topology"
)

type recordSink struct {
	effects []events.DamageEffect
}

func (r *recordSink) Emit(e events.DamageEffect) {
	r.effects = append(r.effects, e)
}

type rig struct {
	circuit *circuit.Circuit
	engine  *Engine
	sink    *recordSink
}

func newRig() *rig {
	c := circuit.New()
	sink := &recordSink{}
	return &rig{
		circuit: c,
		engine:  New(c, topology.New(c), sink, nil),
		sink:    sink,
	}
}

func (r *rig) add(t *testing.T, kind circuit.Kind) *circuit.Component {
	t.Helper()
	comp, err := r.circuit.AddComponent(kind, circuit.Point{})
	require.NoError(t, err)
	return comp
}

func (r *rig) wire(t *testing.T, a *circuit.Component, at string, b *circuit.Component, bt string) *circuit.Wire {
	t.Helper()
	w, err := r.circuit.AddWire(
		circuit.Endpoint{ComponentID: a.ID, Terminal: at},
		circuit.Endpoint{ComponentID: b.ID, Terminal: bt},
	)
	require.NoError(t, err)
	return w
}

func TestSimulateNoopWhenStopped(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	gnd := r.add(t, circuit.KindGround)
	r.wire(t, src, "positive", gnd, "terminal")

	r.engine.Simulate()
	assert.Zero(t, src.Current)
	assert.False(t, r.engine.Running())
}

func TestShortCircuitClampsToFloor(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	gnd := r.add(t, circuit.KindGround)
	r.wire(t, src, "positive", gnd, "terminal")

	r.engine.Start()
	r.engine.Simulate()

	// 9 V across the 0.1 Ω floor.
	assert.InDelta(t, 90.0, src.Current, 1e-9)
	last := r.engine.LastPath()
	assert.InDelta(t, MinResistance, last.Resistance, 1e-9)
	assert.InDelta(t, 9.0, last.Voltage, 1e-9)
}

func TestNominalEmitterCircuit(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	load := r.add(t, circuit.KindLoad)
	em := r.add(t, circuit.KindEmitter)
	gnd := r.add(t, circuit.KindGround)
	r.wire(t, src, "positive", load, "a")
	r.wire(t, load, "b", em, "anode")
	r.wire(t, em, "cathode", gnd, "terminal")

	r.engine.Start()
	r.engine.Simulate()

	// 330 Ω + 100 Ω emitter equivalent + three wire epsilons.
	want := 9.0 / (330 + 100 + 3*circuit.WireResistance)
	assert.InDelta(t, want, em.Current, 1e-9)
	assert.True(t, want < circuit.DefaultEmitterBurnoutCurrent)
	assert.False(t, em.Damaged)
	assert.Empty(t, r.sink.effects)

	assert.Equal(t, circuit.DriveEngine, em.Emitter().Drive)
	assert.InDelta(t, 9.0, src.Voltage, 1e-9)
	assert.Zero(t, gnd.Voltage)
	assert.InDelta(t, circuit.DefaultEmitterForwardVoltage, em.Voltage, 1e-9)
	assert.InDelta(t, want*330, load.Voltage, 1e-9)
}

func TestUnprotectedEmitterBurnsOutOnce(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	em := r.add(t, circuit.KindEmitter)
	gnd := r.add(t, circuit.KindGround)
	r.wire(t, src, "positive", em, "anode")
	r.wire(t, em, "cathode", gnd, "terminal")

	r.engine.Start()
	r.engine.Simulate()

	// 9 V over ~100 Ω is roughly 90 mA, far past the 30 mA limit.
	require.True(t, em.Damaged)
	require.Len(t, r.sink.effects, 1)
	assert.Equal(t, em.ID, r.sink.effects[0].Component)
	assert.Equal(t, events.EffectExplosionFlash, r.sink.effects[0].Effect)
	assert.Equal(t, "red", r.sink.effects[0].Color)

	// The damaged emitter blocks its own path on the next tick; no second
	// effect is emitted.
	r.engine.Simulate()
	assert.True(t, em.Damaged, "damage is sticky while running")
	assert.Len(t, r.sink.effects, 1)
	assert.Zero(t, em.Current)
}

func TestLoadBurnsOutOnOverdissipation(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	src.Source().VoltageIndex = 7 // 24 V
	load := r.add(t, circuit.KindLoad)
	load.Load().ResistanceIndex = 0 // 10 Ω
	gnd := r.add(t, circuit.KindGround)
	r.wire(t, src, "positive", load, "a")
	r.wire(t, load, "b", gnd, "terminal")

	r.engine.Start()
	r.engine.Simulate()

	// ~2.4 A through 10 Ω dissipates far over the quarter-watt limit.
	require.True(t, load.Damaged)
	require.Len(t, r.sink.effects, 1)
	assert.Equal(t, events.EffectSmokePlume, r.sink.effects[0].Effect)
}

func TestStopResetsAndHeals(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	em := r.add(t, circuit.KindEmitter)
	gnd := r.add(t, circuit.KindGround)
	r.wire(t, src, "positive", em, "anode")
	r.wire(t, em, "cathode", gnd, "terminal")

	r.engine.Start()
	r.engine.Simulate()
	require.True(t, em.Damaged)

	r.engine.Stop()
	assert.False(t, r.engine.Running())
	assert.False(t, em.Damaged, "stopping heals all damage")
	assert.Zero(t, em.Current)
	assert.Equal(t, PathSnapshot{}, r.engine.LastPath())

	// Stop is idempotent.
	r.engine.Stop()
	assert.False(t, em.Damaged)

	// Restarting also heals, before the first tick.
	em.Damaged = true
	r.engine.Start()
	assert.False(t, em.Damaged)
}

func TestSharedComponentLastPathWins(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	loadA := r.add(t, circuit.KindLoad)
	loadB := r.add(t, circuit.KindLoad)
	loadB.Load().ResistanceIndex = 8 // 1 kΩ
	gnd := r.add(t, circuit.KindGround)

	// Both branches leave the same source terminal: the source sits on two
	// paths and keeps the value of whichever ran last.
	r.wire(t, src, "positive", loadA, "a")
	r.wire(t, loadA, "b", gnd, "terminal")
	r.wire(t, src, "positive", loadB, "a")
	r.wire(t, loadB, "b", gnd, "terminal")

	r.engine.Start()
	r.engine.Simulate()

	currentA := 9.0 / (330 + 2*circuit.WireResistance)
	currentB := 9.0 / (1000 + 2*circuit.WireResistance)
	assert.InDelta(t, currentA, loadA.Current, 1e-9)
	assert.InDelta(t, currentB, loadB.Current, 1e-9)
	assert.Contains(t, []float64{loadA.Current, loadB.Current}, src.Current)
}

func TestSeriesResistanceFloor(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	gnd := r.add(t, circuit.KindGround)
	r.wire(t, src, "positive", gnd, "terminal")

	paths := topology.New(r.circuit).FindAllPaths()
	require.Len(t, paths, 1)
	assert.Equal(t, MinResistance, SeriesResistance(paths[0]))
}
