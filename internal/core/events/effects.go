// Package events defines the sandbox's cross-subsystem event payloads and
// the damage-effect sink contract. The engine and the wiring validator emit
// effects fire-and-forget; how they are displayed is the render
// collaborator's business.
package events

import "github.com/myteklab/CircuitSim/internal/core/circuit"

// EffectKind selects the visual treatment of a damage effect.
type EffectKind uint8

const (
	EffectSparkBurst EffectKind = iota
	EffectSmokePlume
	EffectExplosionFlash
)

func (k EffectKind) String() string {
	switch k {
	case EffectSparkBurst:
		return "spark-burst"
	case EffectSmokePlume:
		return "smoke-plume"
	case EffectExplosionFlash:
		return "explosion-flash"
	default:
		return "unknown"
	}
}

// DamageEffect is one visual-effect request, emitted exactly once when a
// component is newly flagged as damaged.
type DamageEffect struct {
	Component circuit.ComponentID
	Position  circuit.Point
	Effect    EffectKind
	Color     string // optional, emitter hue
}

// EffectSink consumes damage effects. Implementations must not block; the
// emitting tick does not wait on rendering.
type EffectSink interface {
	Emit(effect DamageEffect)
}

// NopSink discards every effect.
type NopSink struct{}

func (NopSink) Emit(DamageEffect) {}
