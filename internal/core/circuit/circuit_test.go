package circuit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustAdd(t *testing.T, c *Circuit, kind Kind) *Component {
	t.Helper()
	comp, err := c.AddComponent(kind, Point{})
	require.NoError(t, err)
	return comp
}

func mustWire(t *testing.T, c *Circuit, a *Component, at string, b *Component, bt string) *Wire {
	t.Helper()
	w, err := c.AddWire(
		Endpoint{ComponentID: a.ID, Terminal: at},
		Endpoint{ComponentID: b.ID, Terminal: bt},
	)
	require.NoError(t, err)
	return w
}

func TestAddComponentDefaults(t *testing.T) {
	c := New()

	src := mustAdd(t, c, KindSource)
	require.Equal(t, KindSource, src.Kind)
	require.NotEmpty(t, src.ID)
	require.Equal(t, 9.0, src.Source().Voltage())

	load := mustAdd(t, c, KindLoad)
	require.Equal(t, 330.0, load.Load().Resistance())

	sw := mustAdd(t, c, KindSwitch)
	require.False(t, sw.Switch().Closed, "switches default open")

	_, err := c.AddComponent(KindUnknown, Point{})
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestAddWireValidation(t *testing.T) {
	c := New()
	src := mustAdd(t, c, KindSource)
	gnd := mustAdd(t, c, KindGround)

	w := mustWire(t, c, src, "positive", gnd, "terminal")
	require.Equal(t, WireResistance, w.Resistance)

	_, err := c.AddWire(
		Endpoint{ComponentID: src.ID, Terminal: "positive"},
		Endpoint{ComponentID: "missing", Terminal: "terminal"},
	)
	require.ErrorIs(t, err, ErrComponentNotFound)

	_, err = c.AddWire(
		Endpoint{ComponentID: src.ID, Terminal: "positive"},
		Endpoint{ComponentID: gnd.ID, Terminal: "nope"},
	)
	require.ErrorIs(t, err, ErrUnknownTerminal)

	ep := Endpoint{ComponentID: src.ID, Terminal: "positive"}
	_, err = c.AddWire(ep, ep)
	require.ErrorIs(t, err, ErrSelfWire)
}

func TestRemoveComponentCascades(t *testing.T) {
	c := New()
	src := mustAdd(t, c, KindSource)
	load := mustAdd(t, c, KindLoad)
	gnd := mustAdd(t, c, KindGround)
	mustWire(t, c, src, "positive", load, "a")
	mustWire(t, c, load, "b", gnd, "terminal")
	kept := mustWire(t, c, src, "negative", gnd, "terminal")

	require.NoError(t, c.RemoveComponent(load.ID))

	comps, wires := c.Counts()
	require.Equal(t, 2, comps)
	require.Equal(t, 1, wires)
	_, ok := c.Wire(kept.ID)
	require.True(t, ok, "wires not touching the removed component survive")

	require.ErrorIs(t, c.RemoveComponent(load.ID), ErrComponentNotFound)
}

func TestResetDerivedPreservesDamageAndPins(t *testing.T) {
	c := New()
	load := mustAdd(t, c, KindLoad)
	ctrl := mustAdd(t, c, KindController)
	em := mustAdd(t, c, KindEmitter)

	load.Current = 1.5
	load.Voltage = 3.0
	load.Temperature = 0.8
	load.Damaged = true
	ctrl.Controller().OutA = true
	em.Emitter().On = true
	em.Emitter().Brightness = 0.5
	em.Emitter().Drive = DriveEngine

	c.ResetDerived()

	require.Zero(t, load.Current)
	require.Zero(t, load.Voltage)
	require.Zero(t, load.Temperature)
	require.True(t, load.Damaged, "reset must not heal damage")
	require.True(t, ctrl.Controller().OutA, "pins are validator-owned, not reset")
	require.False(t, em.Emitter().On)
	require.Equal(t, DriveNone, em.Emitter().Drive)

	c.ClearDamage()
	require.False(t, load.Damaged)
}

func TestWorldTerminalRotation(t *testing.T) {
	c := New()
	src := mustAdd(t, c, KindSource)
	src.Position = Point{X: 100, Y: 50}

	p, ok := src.WorldTerminal("positive")
	require.True(t, ok)
	require.InDelta(t, 124, p.X, 1e-9)
	require.InDelta(t, 50, p.Y, 1e-9)

	// Two steps is 90°: the +X offset swings onto +Y.
	src.Rotation = 2
	p, _ = src.WorldTerminal("positive")
	require.InDelta(t, 100, p.X, 1e-9)
	require.InDelta(t, 74, p.Y, 1e-9)

	src.Rotation = 1
	p, _ = src.WorldTerminal("positive")
	require.InDelta(t, 100+24/math.Sqrt2, p.X, 1e-9)
	require.InDelta(t, 50+24/math.Sqrt2, p.Y, 1e-9)

	_, ok = src.WorldTerminal("bogus")
	require.False(t, ok)
}

func TestSelectorClamping(t *testing.T) {
	require.Equal(t, SourceVoltages[0], SourceVoltageAt(-3))
	require.Equal(t, SourceVoltages[len(SourceVoltages)-1], SourceVoltageAt(99))
	require.Equal(t, 330.0, LoadResistanceAt(5))
	require.Equal(t, "red", EmitterColorAt(-1))
}
