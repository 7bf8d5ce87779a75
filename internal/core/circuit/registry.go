package circuit

// Spec is the capability record for one component kind: terminal layout,
// default payload, and the document codec hooks. The table below is the
// single place a new kind would be declared.
type Spec struct {
	Label     string
	Terminals []Terminal

	NewProps func() Props

	// EncodeProps copies persisted kind-specific fields into the document
	// record. DecodeProps builds a payload from a record, applying load-time
	// rules (selector clamping, transient resets).
	EncodeProps func(p Props, doc *ComponentDoc)
	DecodeProps func(doc ComponentDoc) Props
}

var kindSpecs = map[Kind]Spec{
	KindSource: {
		Label: "Battery",
		Terminals: []Terminal{
			{Name: "positive", Offset: Point{X: 24, Y: 0}, Polarity: PolarityPositive},
			{Name: "negative", Offset: Point{X: -24, Y: 0}, Polarity: PolarityNegative},
		},
		NewProps: func() Props {
			return &SourceProps{VoltageIndex: DefaultSourceVoltageIndex}
		},
		EncodeProps: func(p Props, doc *ComponentDoc) {
			doc.VoltageIndex = intPtr(p.(*SourceProps).VoltageIndex)
		},
		DecodeProps: func(doc ComponentDoc) Props {
			return &SourceProps{
				VoltageIndex: clampIndex(intOr(doc.VoltageIndex, DefaultSourceVoltageIndex), len(SourceVoltages)),
			}
		},
	},
	KindLoad: {
		Label: "Resistor",
		Terminals: []Terminal{
			{Name: "a", Offset: Point{X: -24, Y: 0}},
			{Name: "b", Offset: Point{X: 24, Y: 0}},
		},
		NewProps: func() Props {
			return &LoadProps{
				ResistanceIndex: DefaultLoadResistanceIndex,
				BurnoutPower:    DefaultLoadBurnoutPower,
			}
		},
		EncodeProps: func(p Props, doc *ComponentDoc) {
			doc.ResistanceIndex = intPtr(p.(*LoadProps).ResistanceIndex)
		},
		DecodeProps: func(doc ComponentDoc) Props {
			return &LoadProps{
				ResistanceIndex: clampIndex(intOr(doc.ResistanceIndex, DefaultLoadResistanceIndex), len(LoadResistances)),
				BurnoutPower:    DefaultLoadBurnoutPower,
			}
		},
	},
	KindEmitter: {
		Label: "LED",
		Terminals: []Terminal{
			{Name: "anode", Offset: Point{X: -16, Y: 0}, Polarity: PolarityPositive},
			{Name: "cathode", Offset: Point{X: 16, Y: 0}, Polarity: PolarityNegative},
		},
		NewProps: newEmitterProps,
		EncodeProps: func(p Props, doc *ComponentDoc) {
			doc.ColorIndex = intPtr(p.(*EmitterProps).ColorIndex)
		},
		DecodeProps: func(doc ComponentDoc) Props {
			p := newEmitterProps().(*EmitterProps)
			p.ColorIndex = clampIndex(intOr(doc.ColorIndex, 0), len(EmitterColors))
			return p
		},
	},
	KindRectifier: {
		Label: "Diode",
		Terminals: []Terminal{
			{Name: "anode", Offset: Point{X: -20, Y: 0}, Polarity: PolarityPositive},
			{Name: "cathode", Offset: Point{X: 20, Y: 0}, Polarity: PolarityNegative},
		},
		NewProps: newRectifierProps,
		EncodeProps: func(Props, *ComponentDoc) {},
		DecodeProps: func(ComponentDoc) Props { return newRectifierProps() },
	},
	KindSwitch: {
		Label: "Switch",
		Terminals: []Terminal{
			{Name: "a", Offset: Point{X: -20, Y: 0}},
			{Name: "b", Offset: Point{X: 20, Y: 0}},
		},
		NewProps: func() Props { return &SwitchProps{} },
		EncodeProps: func(p Props, doc *ComponentDoc) {
			doc.Closed = boolPtr(p.(*SwitchProps).Closed)
		},
		DecodeProps: func(doc ComponentDoc) Props {
			return &SwitchProps{Closed: boolOr(doc.Closed, false)}
		},
	},
	KindGround: {
		Label: "Ground",
		Terminals: []Terminal{
			{Name: "terminal", Offset: Point{X: 0, Y: -16}},
		},
		NewProps:    func() Props { return &GroundProps{} },
		EncodeProps: func(Props, *ComponentDoc) {},
		DecodeProps: func(ComponentDoc) Props { return &GroundProps{} },
	},
	KindPack: {
		Label: "Battery Pack",
		Terminals: []Terminal{
			{Name: "positive", Offset: Point{X: 28, Y: -8}, Polarity: PolarityPositive},
			{Name: "negative", Offset: Point{X: 28, Y: 8}, Polarity: PolarityNegative},
		},
		NewProps:    func() Props { return &PackProps{Voltage: PackVoltage} },
		EncodeProps: func(Props, *ComponentDoc) {},
		DecodeProps: func(ComponentDoc) Props { return &PackProps{Voltage: PackVoltage} },
	},
	KindController: {
		Label: "Controller",
		Terminals: []Terminal{
			{Name: "vin", Offset: Point{X: -32, Y: -16}, Polarity: PolarityPositive},
			{Name: "gnd", Offset: Point{X: -32, Y: 16}, Polarity: PolarityNegative},
			{Name: "d2", Offset: Point{X: 32, Y: -16}},
			{Name: "d3", Offset: Point{X: 32, Y: 16}},
		},
		NewProps: func() Props { return &ControllerProps{} },
		EncodeProps: func(p Props, doc *ComponentDoc) {
			cp := p.(*ControllerProps)
			doc.OutA = boolPtr(cp.OutA)
			doc.OutB = boolPtr(cp.OutB)
		},
		// Pin states are session-transient: persisted for inspection but
		// always low after a load.
		DecodeProps: func(ComponentDoc) Props { return &ControllerProps{} },
	},
	KindDriver: {
		Label: "Motor Driver",
		Terminals: []Terminal{
			{Name: "vcc", Offset: Point{X: -32, Y: -24}, Polarity: PolarityPositive},
			{Name: "gnd", Offset: Point{X: -32, Y: 24}, Polarity: PolarityNegative},
			{Name: "in1", Offset: Point{X: -32, Y: -8}},
			{Name: "in2", Offset: Point{X: -32, Y: 8}},
			{Name: "out1", Offset: Point{X: 32, Y: -24}},
			{Name: "out2", Offset: Point{X: 32, Y: -8}},
			{Name: "out3", Offset: Point{X: 32, Y: 8}},
			{Name: "out4", Offset: Point{X: 32, Y: 24}},
		},
		NewProps:    func() Props { return &DriverProps{} },
		EncodeProps: func(Props, *ComponentDoc) {},
		DecodeProps: func(ComponentDoc) Props { return &DriverProps{} },
	},
	KindActuator: {
		Label: "Motor",
		Terminals: []Terminal{
			{Name: "t1", Offset: Point{X: -12, Y: -20}},
			{Name: "t2", Offset: Point{X: 12, Y: -20}},
		},
		NewProps:    func() Props { return &ActuatorProps{} },
		EncodeProps: func(Props, *ComponentDoc) {},
		DecodeProps: func(ComponentDoc) Props { return &ActuatorProps{} },
	},
}

func newEmitterProps() Props {
	return &EmitterProps{
		ForwardVoltage: DefaultEmitterForwardVoltage,
		MaxSafeCurrent: DefaultEmitterMaxSafeCurrent,
		BurnoutCurrent: DefaultEmitterBurnoutCurrent,
	}
}

func newRectifierProps() Props {
	return &RectifierProps{
		ForwardVoltage:    DefaultRectifierForwardVoltage,
		ForwardResistance: DefaultRectifierForwardResistance,
		ReverseResistance: DefaultRectifierReverseResistance,
		BurnoutCurrent:    DefaultRectifierBurnoutCurrent,
	}
}

// SpecFor returns the capability record for a kind.
func SpecFor(kind Kind) (Spec, bool) {
	s, ok := kindSpecs[kind]
	return s, ok
}

func specFor(kind Kind) Spec {
	return kindSpecs[kind]
}

// Kinds returns every registered kind. Order is unspecified.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindSpecs))
	for k := range kindSpecs {
		out = append(out, k)
	}
	return out
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
