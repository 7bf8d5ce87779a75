package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myteklab/CircuitSim/internal/core/circuit"
)

func codesOf(problems []Problem) []string {
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.Code)
	}
	return out
}

func TestProblemsIncompleteCircuit(t *testing.T) {
	r := newRig()
	r.add(t, circuit.KindSource)
	r.add(t, circuit.KindLoad)

	problems := r.engine.Problems()
	require.Len(t, problems, 1)
	assert.Equal(t, CodeIncomplete, problems[0].Code)
	assert.Equal(t, SeverityInfo, problems[0].Severity)
}

func TestProblemsEmptyCircuitIsQuiet(t *testing.T) {
	r := newRig()
	assert.Empty(t, r.engine.Problems(), "no sources means nothing to report")
}

func TestProblemsHighCurrent(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	gnd := r.add(t, circuit.KindGround)
	r.wire(t, src, "positive", gnd, "terminal")

	r.engine.Start()
	r.engine.Simulate()

	codes := codesOf(r.engine.Problems())
	assert.Contains(t, codes, CodeHighCurrent)
}

func TestProblemsDamagedComponent(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	em := r.add(t, circuit.KindEmitter)
	gnd := r.add(t, circuit.KindGround)
	r.wire(t, src, "positive", em, "anode")
	r.wire(t, em, "cathode", gnd, "terminal")

	r.engine.Start()
	r.engine.Simulate()
	require.True(t, em.Damaged)

	var damaged *Problem
	problems := r.engine.Problems()
	for i := range problems {
		if problems[i].Code == CodeDamaged {
			damaged = &problems[i]
			break
		}
	}
	require.NotNil(t, damaged)
	assert.Equal(t, SeverityError, damaged.Severity)
	assert.Equal(t, em.ID, damaged.Component)
}

func TestProblemsResistorBypass(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	load := r.add(t, circuit.KindLoad)
	em := r.add(t, circuit.KindEmitter)
	gnd := r.add(t, circuit.KindGround)

	// Protected route through the load plus a second wire shorting straight
	// to the emitter.
	r.wire(t, src, "positive", load, "a")
	r.wire(t, load, "b", em, "anode")
	r.wire(t, em, "cathode", gnd, "terminal")
	r.wire(t, src, "positive", em, "anode")

	codes := codesOf(r.engine.Problems())
	assert.Contains(t, codes, CodeResistorBypass)
}

func TestProblemsNoBypassWhenAllPathsProtected(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	load := r.add(t, circuit.KindLoad)
	em := r.add(t, circuit.KindEmitter)
	gnd := r.add(t, circuit.KindGround)
	r.wire(t, src, "positive", load, "a")
	r.wire(t, load, "b", em, "anode")
	r.wire(t, em, "cathode", gnd, "terminal")

	codes := codesOf(r.engine.Problems())
	assert.NotContains(t, codes, CodeResistorBypass)
}

func TestStats(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	load := r.add(t, circuit.KindLoad)
	gnd := r.add(t, circuit.KindGround)
	r.add(t, circuit.KindSwitch) // disconnected, never active
	r.wire(t, src, "positive", load, "a")
	r.wire(t, load, "b", gnd, "terminal")

	r.engine.Start()
	r.engine.Simulate()

	stats := r.engine.Stats()
	assert.Equal(t, 1, stats.PathCount)
	assert.Equal(t, 3, stats.ActiveComponents)
	assert.Equal(t, 4, stats.TotalComponents)
	assert.True(t, stats.Running)

	current := 9.0 / (330 + 2*circuit.WireResistance)
	assert.InDelta(t, 9.0*current, stats.TotalSourcePower, 1e-9)
}

func TestAnalyzeSummaries(t *testing.T) {
	r := newRig()
	src := r.add(t, circuit.KindSource)
	load := r.add(t, circuit.KindLoad)
	gnd := r.add(t, circuit.KindGround)
	r.wire(t, src, "positive", load, "a")
	r.wire(t, load, "b", gnd, "terminal")

	analysis := r.engine.Analyze()
	require.Len(t, analysis.Paths, 1)
	p := analysis.Paths[0]
	assert.Equal(t, []string{"source", "load", "ground"}, p.Kinds)
	assert.InDelta(t, 330+2*circuit.WireResistance, p.Resistance, 1e-9)
	assert.InDelta(t, 9.0/p.Resistance, p.Current, 1e-9)
}
