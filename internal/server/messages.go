package server

import (
	"github.com/myteklab/CircuitSim/internal/core/circuit"
	"github.com/myteklab/CircuitSim/internal/core/engine"
	"github.com/myteklab/CircuitSim/internal/core/harness"
)

// Op is one inbound canvas operation from a connected client. Fields beyond
// Action are populated per action.
type Op struct {
	Action string `json:"action"`

	Kind     string  `json:"kind,omitempty"`
	ID       string  `json:"id,omitempty"`
	WireID   string  `json:"wireId,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Steps    int     `json:"steps,omitempty"`
	Index    int     `json:"index,omitempty"`
	Channel  int     `json:"channel,omitempty"`
	High     bool    `json:"high,omitempty"`
	Closed   bool    `json:"closed,omitempty"`
	From     *circuit.EndpointDoc `json:"from,omitempty"`
	To       *circuit.EndpointDoc `json:"to,omitempty"`
	Document *circuit.Document    `json:"document,omitempty"`
}

// Op actions.
const (
	OpAdd        = "add"
	OpMove       = "move"
	OpRotate     = "rotate"
	OpDelete     = "delete"
	OpWire       = "wire"
	OpUnwire     = "unwire"
	OpSwitch     = "switch"
	OpVoltage    = "voltage"
	OpResistance = "resistance"
	OpColor      = "color"
	OpPin        = "pin"
	OpStart      = "start"
	OpStop       = "stop"
	OpUndo       = "undo"
	OpRedo       = "redo"
	OpClear      = "clear"
	OpLoad       = "load"
	OpSave       = "save"
)

// ComponentView is the per-frame derived state of one component.
type ComponentView struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Rotation    int     `json:"rotation"`
	Damaged     bool    `json:"damaged"`
	Current     float64 `json:"current"`
	Voltage     float64 `json:"voltage"`
	Temperature float64 `json:"temperature"`

	On         *bool    `json:"on,omitempty"`
	Brightness *float64 `json:"brightness,omitempty"`
	Color      *string  `json:"color,omitempty"`
	Closed     *bool    `json:"closed,omitempty"`
	Powered    *bool    `json:"powered,omitempty"`
	Spinning   *bool    `json:"spinning,omitempty"`
	OutA       *bool    `json:"outA,omitempty"`
	OutB       *bool    `json:"outB,omitempty"`
}

// WireView is the per-frame derived state of one wire.
type WireView struct {
	ID      string              `json:"id"`
	From    circuit.EndpointDoc `json:"from"`
	To      circuit.EndpointDoc `json:"to"`
	Current float64             `json:"current"`
	Active  bool                `json:"active"`
}

// EffectView is one damage effect drained from the session bus this frame.
type EffectView struct {
	ComponentID string  `json:"componentId"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Effect      string  `json:"effect"`
	Color       string  `json:"color,omitempty"`
}

// HarnessView summarizes the wiring validator's checklist.
type HarnessView struct {
	Progress int                  `json:"progress"`
	Total    int                  `json:"total"`
	Slots    []harness.SlotStatus `json:"slots"`
}

// Frame is one outbound state broadcast.
type Frame struct {
	Type       string              `json:"type"` // always "frame"
	Running    bool                `json:"running"`
	Components []ComponentView     `json:"components"`
	Wires      []WireView          `json:"wires"`
	Statistics engine.Statistics   `json:"statistics"`
	Problems   []engine.Problem    `json:"problems"`
	LastPath   engine.PathSnapshot `json:"lastPath"`
	Harness    HarnessView         `json:"harness"`
	Effects    []EffectView        `json:"effects,omitempty"`
}

// DocumentMessage carries a saved document back to the requesting client.
type DocumentMessage struct {
	Type     string           `json:"type"` // always "document"
	Document circuit.Document `json:"document"`
}

// ErrorMessage reports a rejected operation back to the sender.
type ErrorMessage struct {
	Type    string `json:"type"` // always "error"
	Action  string `json:"action"`
	Message string `json:"message"`
}
