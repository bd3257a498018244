package simulation

import "time"

// MachineSnapshot is the complete machine state after one tick.
// It holds only values, so a copy handed to a reader never changes.
type MachineSnapshot struct {
	Timestamp      time.Time
	SimulationTime float64 // seconds since the engine was created
	State          OperatingState
	Program        ProgramStatus
	Spindle        SpindleState
	Feed           FeedState
	Tool           ToolState
	Vibration      VibrationState
	Production     ProductionCounters
	Auxiliary      AuxiliaryState
}

// ProgramStatus describes the active machining program, if any.
type ProgramStatus struct {
	Name     string
	Active   bool
	Progress float64 // [0,1]
}

type SpindleState struct {
	Speed       float64 // rpm
	Load        float64 // %
	Torque      float64 // N·m
	Power       float64 // kW
	Temperature float64 // °C
}

type Position struct {
	X, Y, Z float64 // mm
}

type FeedState struct {
	Rate     float64 // mm/min
	Override float64 // %
	Position Position
}

type ToolState struct {
	Number        int
	WearX         float64 // mm
	WearZ         float64 // mm
	LifeRemaining float64 // %
	Lifecycle     ToolLifecycle
}

type VibrationState struct {
	X, Y, Z float64 // mm/s RMS
	Overall float64 // mm/s RMS
}

type ProductionCounters struct {
	PartsProduced int
	GoodParts     int
	RejectedParts int
	CycleTime     float64 // s
	Efficiency    float64 // %
}

type AuxiliaryState struct {
	CoolantLevel       float64 // %
	CoolantTemperature float64 // °C
	AirPressure        float64 // bar
	HydraulicPressure  float64 // bar
}

// Defaults for a machine that has just been powered on.
const (
	AmbientTemperatureC      = 22.0
	defaultOverridePercent   = 100.0
	defaultToolNumber        = 1
	fullLifePercent          = 100.0
	fullCoolantPercent       = 100.0
	idleCoolantTemperatureC  = 25.0
	nominalAirPressureBar    = 6.0
	nominalHydraulicPressure = 40.0
)

// initialSnapshot returns the idle, power-on state.
func initialSnapshot() MachineSnapshot {
	return MachineSnapshot{
		State: StateIdle,
		Spindle: SpindleState{
			Temperature: AmbientTemperatureC,
		},
		Feed: FeedState{
			Override: defaultOverridePercent,
		},
		Tool: ToolState{
			Number:        defaultToolNumber,
			LifeRemaining: fullLifePercent,
			Lifecycle:     ToolNew,
		},
		Auxiliary: AuxiliaryState{
			CoolantLevel:       fullCoolantPercent,
			CoolantTemperature: idleCoolantTemperatureC,
			AirPressure:        nominalAirPressureBar,
			HydraulicPressure:  nominalHydraulicPressure,
		},
	}
}
