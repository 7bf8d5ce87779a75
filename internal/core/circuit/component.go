package circuit

// Terminal is a named connection point in the component's local, unrotated
// frame. World position requires the owning component's rotation transform.
type Terminal struct {
	Name     string
	Offset   Point
	Polarity Polarity
}

// Props is the kind-specific payload of a component. The set of
// implementations is closed: one per Kind, registered in the kind table.
type Props interface {
	PropsKind() Kind
	Clone() Props
}

// Component is a placed electrical device. Common fields live here; behavior
// that varies by kind routes through the Props payload and the kind table.
//
// Current, Voltage and Temperature are derived: the engine overwrites them
// every simulation tick. Damaged is monotonic within a running session; only
// ClearDamage unsets it.
type Component struct {
	ID       ComponentID
	Kind     Kind
	Position Point
	Rotation int // orientation step, 0..7, 45° each

	Damaged bool

	Current     float64
	Voltage     float64
	Temperature float64

	Props Props
}

// Terminals returns the kind's terminal layout in the local frame.
func (c *Component) Terminals() []Terminal {
	return specFor(c.Kind).Terminals
}

// Terminal looks up a terminal by name.
func (c *Component) Terminal(name string) (Terminal, bool) {
	for _, t := range c.Terminals() {
		if t.Name == name {
			return t, true
		}
	}
	return Terminal{}, false
}

// WorldTerminal returns the canvas position of a named terminal with the
// component's rotation applied.
func (c *Component) WorldTerminal(name string) (Point, bool) {
	t, ok := c.Terminal(name)
	if !ok {
		return Point{}, false
	}
	return c.Position.Add(t.Offset.Rotate(c.Rotation)), true
}

// ResetDerived zeroes the engine-written fields. Damage and validator-owned
// pin states survive; only ClearDamage touches the damage flag.
func (c *Component) ResetDerived() {
	c.Current = 0
	c.Voltage = 0
	c.Temperature = 0
	if p := c.Emitter(); p != nil {
		p.On = false
		p.Brightness = 0
		p.Drive = DriveNone
	}
}

// Conducts reports whether the component passes current at all in the
// generic topology: open switches and damaged components block.
func (c *Component) Conducts() bool {
	if c.Damaged {
		return false
	}
	if p := c.Switch(); p != nil {
		return p.Closed
	}
	return true
}

// Typed payload accessors. Each returns nil when the component is a
// different kind, so call sites read as guarded type switches.

func (c *Component) Source() *SourceProps {
	p, _ := c.Props.(*SourceProps)
	return p
}

func (c *Component) Load() *LoadProps {
	p, _ := c.Props.(*LoadProps)
	return p
}

func (c *Component) Emitter() *EmitterProps {
	p, _ := c.Props.(*EmitterProps)
	return p
}

func (c *Component) Rectifier() *RectifierProps {
	p, _ := c.Props.(*RectifierProps)
	return p
}

func (c *Component) Switch() *SwitchProps {
	p, _ := c.Props.(*SwitchProps)
	return p
}

func (c *Component) Pack() *PackProps {
	p, _ := c.Props.(*PackProps)
	return p
}

func (c *Component) Controller() *ControllerProps {
	p, _ := c.Props.(*ControllerProps)
	return p
}

func (c *Component) Driver() *DriverProps {
	p, _ := c.Props.(*DriverProps)
	return p
}

func (c *Component) Actuator() *ActuatorProps {
	p, _ := c.Props.(*ActuatorProps)
	return p
}

// SourceProps configures an adjustable voltage source.
type SourceProps struct {
	VoltageIndex int
}

func (p *SourceProps) PropsKind() Kind { return KindSource }
func (p *SourceProps) Clone() Props    { q := *p; return &q }

// Voltage resolves the selected supply voltage.
func (p *SourceProps) Voltage() float64 { return SourceVoltageAt(p.VoltageIndex) }

// LoadProps configures an ohmic resistive load.
type LoadProps struct {
	ResistanceIndex int
	BurnoutPower    float64
}

func (p *LoadProps) PropsKind() Kind { return KindLoad }
func (p *LoadProps) Clone() Props    { q := *p; return &q }

// Resistance resolves the selected nominal resistance.
func (p *LoadProps) Resistance() float64 { return LoadResistanceAt(p.ResistanceIndex) }

// EmitterProps configures a light emitter. On, Brightness and Drive are
// derived presentation state rewritten each tick.
type EmitterProps struct {
	ForwardVoltage float64
	MaxSafeCurrent float64
	BurnoutCurrent float64
	ColorIndex     int

	On         bool
	Brightness float64
	Drive      DriveSource
}

func (p *EmitterProps) PropsKind() Kind { return KindEmitter }
func (p *EmitterProps) Clone() Props    { q := *p; return &q }

// Color resolves the selected hue name.
func (p *EmitterProps) Color() string { return EmitterColorAt(p.ColorIndex) }

// RectifierProps configures a one-way device.
type RectifierProps struct {
	ForwardVoltage    float64
	ForwardResistance float64
	ReverseResistance float64
	BurnoutCurrent    float64
}

func (p *RectifierProps) PropsKind() Kind { return KindRectifier }
func (p *RectifierProps) Clone() Props    { q := *p; return &q }

// SwitchProps configures a switch. Default open.
type SwitchProps struct {
	Closed bool
}

func (p *SwitchProps) PropsKind() Kind { return KindSwitch }
func (p *SwitchProps) Clone() Props    { q := *p; return &q }

// GroundProps marks the reference ground. No configuration.
type GroundProps struct{}

func (p *GroundProps) PropsKind() Kind { return KindGround }
func (p *GroundProps) Clone() Props    { q := *p; return &q }

// PackProps configures the fixed-voltage robotics battery pack.
type PackProps struct {
	Voltage float64
}

func (p *PackProps) PropsKind() Kind { return KindPack }
func (p *PackProps) Clone() Props    { q := *p; return &q }

// ControllerProps holds the microcontroller's digital output pins and its
// harness-derived power state. Pin booleans are owned by the wiring
// validator and are deliberately untouched by ResetDerived.
type ControllerProps struct {
	OutA bool
	OutB bool

	Powered bool
}

func (p *ControllerProps) PropsKind() Kind { return KindController }
func (p *ControllerProps) Clone() Props    { q := *p; return &q }

// Out reports the logical level of digital output channel 0 (A) or 1 (B).
func (p *ControllerProps) Out(channel int) bool {
	if channel == 0 {
		return p.OutA
	}
	return p.OutB
}

// SetOut sets the logical level of digital output channel 0 (A) or 1 (B).
func (p *ControllerProps) SetOut(channel int, high bool) {
	if channel == 0 {
		p.OutA = high
	} else {
		p.OutB = high
	}
}

// DriverProps holds the motor driver stage's validator-derived states.
type DriverProps struct {
	Powered bool
	SignalA bool
	SignalB bool
}

func (p *DriverProps) PropsKind() Kind { return KindDriver }
func (p *DriverProps) Clone() Props    { q := *p; return &q }

// ActuatorProps holds the actuator's validator-derived spin state.
type ActuatorProps struct {
	Spinning bool
}

func (p *ActuatorProps) PropsKind() Kind { return KindActuator }
func (p *ActuatorProps) Clone() Props    { q := *p; return &q }
