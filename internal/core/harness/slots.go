package harness

// SlotIndex identifies one of the ten fixed point-to-point wiring
// requirements of the robotics harness, in checklist order.
type SlotIndex int

const (
	SlotPackToControllerPower SlotIndex = iota
	SlotPackToControllerGround
	SlotPackToDriverPower
	SlotPackToDriverGround
	SlotOutAToDriverInA
	SlotOutBToDriverInB
	SlotDriverToActuatorA1
	SlotDriverToActuatorA2
	SlotDriverToActuatorB1
	SlotDriverToActuatorB2

	SlotCount = 10
)

// baseSlotCount counts the slots that apply whenever pack, controller and
// driver are all present; each present actuator adds two more.
const baseSlotCount = 6

// role selects which harness instance a slot endpoint refers to.
type role uint8

const (
	rolePack role = iota
	roleController
	roleDriver
	roleActuatorA
	roleActuatorB
)

// slotDef names the two terminals a slot requires to be wired, in either
// direction.
type slotDef struct {
	Name  string
	ARole role
	ATerm string
	BRole role
	BTerm string
}

var slotDefs = [SlotCount]slotDef{
	{Name: "pack+ to controller power", ARole: rolePack, ATerm: "positive", BRole: roleController, BTerm: "vin"},
	{Name: "pack- to controller ground", ARole: rolePack, ATerm: "negative", BRole: roleController, BTerm: "gnd"},
	{Name: "pack+ to driver VCC", ARole: rolePack, ATerm: "positive", BRole: roleDriver, BTerm: "vcc"},
	{Name: "pack- to driver ground", ARole: rolePack, ATerm: "negative", BRole: roleDriver, BTerm: "gnd"},
	{Name: "digital out A to driver in A", ARole: roleController, ATerm: "d2", BRole: roleDriver, BTerm: "in1"},
	{Name: "digital out B to driver in B", ARole: roleController, ATerm: "d3", BRole: roleDriver, BTerm: "in2"},
	{Name: "driver out A1 to motor A", ARole: roleDriver, ATerm: "out1", BRole: roleActuatorA, BTerm: "t1"},
	{Name: "driver out A2 to motor A", ARole: roleDriver, ATerm: "out2", BRole: roleActuatorA, BTerm: "t2"},
	{Name: "driver out B1 to motor B", ARole: roleDriver, ATerm: "out3", BRole: roleActuatorB, BTerm: "t1"},
	{Name: "driver out B2 to motor B", ARole: roleDriver, ATerm: "out4", BRole: roleActuatorB, BTerm: "t2"},
}

// SlotStatus is one checklist row for display.
type SlotStatus struct {
	Name       string `json:"name"`
	Applicable bool   `json:"applicable"`
	Satisfied  bool   `json:"satisfied"`
}
