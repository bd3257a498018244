package models

import "time"

// Event types recorded in the machine event log.
const (
	EventStart          = "START"
	EventComplete       = "COMPLETE"
	EventAlarm          = "ALARM"
	EventAlarmCleared   = "ALARM_CLEARED"
	EventEmergencyStop  = "EMERGENCY_STOP"
	EventToolChange     = "TOOL_CHANGE"
	EventCountersReset  = "COUNTERS_RESET"
	EventOverrideChange = "OVERRIDE_CHANGE"
	EventStateChange    = "STATE_CHANGE"
)

// MachineEvent is a single log entry.
type MachineEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // one of the Event* constants
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
