package cnc_simulator

import (
	"fmt"
	"strings"

	"cnc_simulator/internal/simulation"
)

// Wire names and codes for operating states. Codes are stable and must not be
// renumbered once clients depend on them.
var operatingStates = []struct {
	state simulation.OperatingState
	name  string
	code  int
}{
	{simulation.StateIdle, "Idle", 0},
	{simulation.StateRunning, "Running", 1},
	{simulation.StateAlarm, "Alarm", 2},
	{simulation.StateMaintenance, "Maintenance", 3},
	{simulation.StateSetup, "Setup", 4},
}

var toolLifecycles = map[simulation.ToolLifecycle]string{
	simulation.ToolNew:    "New",
	simulation.ToolGood:   "Good",
	simulation.ToolWorn:   "Worn",
	simulation.ToolBroken: "Broken",
}

// OperatingStateName returns the wire name of s.
func OperatingStateName(s simulation.OperatingState) string {
	for _, e := range operatingStates {
		if e.state == s {
			return e.name
		}
	}
	return "Unknown"
}

// OperatingStateCode returns the wire code of s, or -1.
func OperatingStateCode(s simulation.OperatingState) int {
	for _, e := range operatingStates {
		if e.state == s {
			return e.code
		}
	}
	return -1
}

// ParseOperatingState accepts a wire name (case-insensitive).
func ParseOperatingState(name string) (simulation.OperatingState, error) {
	for _, e := range operatingStates {
		if strings.EqualFold(e.name, strings.TrimSpace(name)) {
			return e.state, nil
		}
	}
	return 0, fmt.Errorf("unknown operating state %q", name)
}

// ToolLifecycleName returns the wire name of l.
func ToolLifecycleName(l simulation.ToolLifecycle) string {
	if name, ok := toolLifecycles[l]; ok {
		return name
	}
	return "Unknown"
}

// StatusFromSnapshot maps a core snapshot onto the wire form.
func StatusFromSnapshot(s simulation.MachineSnapshot) MachineStatus {
	return MachineStatus{
		Timestamp:      s.Timestamp.UTC(),
		SimulationTime: s.SimulationTime,
		State:          OperatingStateName(s.State),
		StateCode:      OperatingStateCode(s.State),
		Program: Program{
			Name:     s.Program.Name,
			Active:   s.Program.Active,
			Progress: s.Program.Progress,
		},
		Spindle: Spindle{
			Speed:       s.Spindle.Speed,
			Load:        s.Spindle.Load,
			Torque:      s.Spindle.Torque,
			Power:       s.Spindle.Power,
			Temperature: s.Spindle.Temperature,
		},
		Feed: Feed{
			Rate:     s.Feed.Rate,
			Override: s.Feed.Override,
			Position: Position{X: s.Feed.Position.X, Y: s.Feed.Position.Y, Z: s.Feed.Position.Z},
		},
		Tool: Tool{
			Number:        s.Tool.Number,
			WearX:         s.Tool.WearX,
			WearZ:         s.Tool.WearZ,
			LifeRemaining: s.Tool.LifeRemaining,
			State:         ToolLifecycleName(s.Tool.Lifecycle),
		},
		Vibration: Vibration{
			X:       s.Vibration.X,
			Y:       s.Vibration.Y,
			Z:       s.Vibration.Z,
			Overall: s.Vibration.Overall,
		},
		Production: Production{
			PartsProduced: s.Production.PartsProduced,
			GoodParts:     s.Production.GoodParts,
			RejectedParts: s.Production.RejectedParts,
			CycleTime:     s.Production.CycleTime,
			Efficiency:    s.Production.Efficiency,
		},
		Auxiliary: Auxiliary{
			CoolantLevel:       s.Auxiliary.CoolantLevel,
			CoolantTemperature: s.Auxiliary.CoolantTemperature,
			AirPressure:        s.Auxiliary.AirPressure,
			HydraulicPressure:  s.Auxiliary.HydraulicPressure,
		},
	}
}
