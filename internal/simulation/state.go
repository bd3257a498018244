package simulation

// OperatingState is the machine-level operating mode.
type OperatingState int

const (
	StateIdle OperatingState = iota
	StateRunning
	StateAlarm
	StateMaintenance
	StateSetup
)

func (s OperatingState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateAlarm:
		return "Alarm"
	case StateMaintenance:
		return "Maintenance"
	case StateSetup:
		return "Setup"
	default:
		return "Unknown"
	}
}

// ToolLifecycle classifies the cutting tool by remaining life.
type ToolLifecycle int

const (
	ToolNew ToolLifecycle = iota
	ToolGood
	ToolWorn
	ToolBroken
)

func (l ToolLifecycle) String() string {
	switch l {
	case ToolNew:
		return "New"
	case ToolGood:
		return "Good"
	case ToolWorn:
		return "Worn"
	case ToolBroken:
		return "Broken"
	default:
		return "Unknown"
	}
}

// Life thresholds in percent; a tool is classified by the first one it exceeds.
const (
	newToolLifeAbove  = 80.0
	goodToolLifeAbove = 20.0
	wornToolLifeAbove = 5.0
)

// lifecycleFor derives the lifecycle purely from remaining life.
func lifecycleFor(lifeRemaining float64) ToolLifecycle {
	switch {
	case lifeRemaining > newToolLifeAbove:
		return ToolNew
	case lifeRemaining > goodToolLifeAbove:
		return ToolGood
	case lifeRemaining > wornToolLifeAbove:
		return ToolWorn
	default:
		return ToolBroken
	}
}
