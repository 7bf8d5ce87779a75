package events

import "github.com/myteklab/CircuitSim/internal/core/events/bus"

// TypeDamageEffect is the bus event type carrying a DamageEffect payload.
const TypeDamageEffect = "effect.damage"

// BusSink publishes damage effects onto an event bus so any number of
// consumers (the render surface, logging) can observe them.
type BusSink struct {
	bus    bus.EventBus
	source string
}

// NewBusSink creates a sink publishing under the given source label.
func NewBusSink(b bus.EventBus, source string) *BusSink {
	return &BusSink{bus: b, source: source}
}

func (s *BusSink) Emit(effect DamageEffect) {
	// Fire and forget: a failing consumer must not disturb the tick.
	_ = s.bus.Publish(bus.NewEvent(TypeDamageEffect, s.source, effect))
}
