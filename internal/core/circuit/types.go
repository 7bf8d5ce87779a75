package circuit

import (
	"math"

	"github.com/google/uuid"
)

// ComponentID represents a unique identifier for a placed component
type ComponentID string

// WireID represents a unique identifier for a wire
type WireID string

// NewComponentID generates a fresh component identifier.
func NewComponentID() ComponentID {
	return ComponentID(uuid.NewString())
}

// NewWireID generates a fresh wire identifier.
func NewWireID() WireID {
	return WireID(uuid.NewString())
}

// Kind discriminates the closed set of component variants.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindSource
	KindLoad
	KindEmitter
	KindRectifier
	KindSwitch
	KindGround
	KindPack
	KindController
	KindDriver
	KindActuator
)

func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindLoad:
		return "load"
	case KindEmitter:
		return "emitter"
	case KindRectifier:
		return "rectifier"
	case KindSwitch:
		return "switch"
	case KindGround:
		return "ground"
	case KindPack:
		return "pack"
	case KindController:
		return "controller"
	case KindDriver:
		return "driver"
	case KindActuator:
		return "actuator"
	default:
		return "unknown"
	}
}

// KindFromString resolves a persisted kind name. Unknown names map to
// KindUnknown, which the document decoder skips.
func KindFromString(s string) Kind {
	switch s {
	case "source":
		return KindSource
	case "load":
		return KindLoad
	case "emitter":
		return KindEmitter
	case "rectifier":
		return KindRectifier
	case "switch":
		return KindSwitch
	case "ground":
		return KindGround
	case "pack":
		return KindPack
	case "controller":
		return KindController
	case "driver":
		return KindDriver
	case "actuator":
		return KindActuator
	default:
		return KindUnknown
	}
}

// Polarity tags a terminal with its electrical orientation
type Polarity uint8

const (
	PolarityNone Polarity = iota
	PolarityPositive
	PolarityNegative
)

// DriveSource records which subsystem last wrote an emitter's current.
// Resolved once per tick before any driver writes (stale provenance would
// otherwise make the zeroing order-dependent).
type DriveSource uint8

const (
	DriveNone DriveSource = iota
	DriveEngine
	DriveValidator
)

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RotationSteps is the number of permitted component orientations (45° each).
const RotationSteps = 8

// Rotate applies an orientation of step*45° around the origin.
func (p Point) Rotate(step int) Point {
	step = ((step % RotationSteps) + RotationSteps) % RotationSteps
	rad := float64(step) * math.Pi / 4
	sin, cos := math.Sincos(rad)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}
