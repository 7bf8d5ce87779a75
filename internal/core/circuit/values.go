package circuit

// Selector tables for kind-specific properties. Documents persist indices
// into these tables, never raw values, so the tables are append-only.

// SourceVoltages is the enumerated set of selectable supply voltages.
var SourceVoltages = []float64{1.5, 3.0, 4.5, 5.0, 6.0, 9.0, 12.0, 24.0}

// LoadResistances is the standard 12-value resistor set, in ohms.
var LoadResistances = []float64{10, 22, 47, 100, 220, 330, 470, 680, 1000, 2200, 4700, 10000}

// EmitterColors is the selectable emitter hue set.
var EmitterColors = []string{"red", "green", "blue", "yellow", "white"}

const (
	// DefaultSourceVoltageIndex selects 9 V.
	DefaultSourceVoltageIndex = 5
	// DefaultLoadResistanceIndex selects 330 Ω.
	DefaultLoadResistanceIndex = 5

	// DefaultLoadBurnoutPower is the dissipation limit of a standard load, in watts.
	DefaultLoadBurnoutPower = 0.25

	// DefaultEmitterForwardVoltage is the forward drop of an emitter, in volts.
	DefaultEmitterForwardVoltage = 2.0
	// DefaultEmitterMaxSafeCurrent is the rated operating current, in amps.
	DefaultEmitterMaxSafeCurrent = 0.020
	// DefaultEmitterBurnoutCurrent is the current above which an emitter burns out.
	DefaultEmitterBurnoutCurrent = 0.030

	// DefaultRectifierForwardVoltage is the conducting drop of a rectifier.
	DefaultRectifierForwardVoltage = 0.7
	// DefaultRectifierForwardResistance models the conducting device.
	DefaultRectifierForwardResistance = 0.5
	// DefaultRectifierReverseResistance models the blocking device.
	DefaultRectifierReverseResistance = 1e9
	// DefaultRectifierBurnoutCurrent is the current above which a rectifier fails.
	DefaultRectifierBurnoutCurrent = 1.0

	// PackVoltage is the fixed output of the robotics battery pack.
	PackVoltage = 6.0

	// WireResistance is the near-zero series resistance of an ideal wire.
	// Nonzero so a bare source-to-ground loop never divides by zero.
	WireResistance = 0.001
)

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// SourceVoltageAt resolves a selector index, clamping out-of-range values.
func SourceVoltageAt(i int) float64 {
	return SourceVoltages[clampIndex(i, len(SourceVoltages))]
}

// LoadResistanceAt resolves a selector index, clamping out-of-range values.
func LoadResistanceAt(i int) float64 {
	return LoadResistances[clampIndex(i, len(LoadResistances))]
}

// EmitterColorAt resolves a selector index, clamping out-of-range values.
func EmitterColorAt(i int) string {
	return EmitterColors[clampIndex(i, len(EmitterColors))]
}
