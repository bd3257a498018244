package cnc_simulator

import (
	"encoding/json"
	"testing"
	"time"

	"cnc_simulator/internal/simulation"
)

func TestOperatingStateRoundTrip(t *testing.T) {
	for _, st := range []simulation.OperatingState{
		simulation.StateIdle, simulation.StateRunning, simulation.StateAlarm,
		simulation.StateMaintenance, simulation.StateSetup,
	} {
		name := OperatingStateName(st)
		got, err := ParseOperatingState(name)
		if err != nil {
			t.Fatalf("ParseOperatingState(%q): %v", name, err)
		}
		if got != st {
			t.Fatalf("round trip %v -> %q -> %v", st, name, got)
		}
	}
}

func TestParseOperatingState_CaseInsensitiveAndUnknown(t *testing.T) {
	got, err := ParseOperatingState("  maintenance ")
	if err != nil || got != simulation.StateMaintenance {
		t.Fatalf("got %v, %v", got, err)
	}
	if _, err := ParseOperatingState("EXPLODED"); err == nil {
		t.Fatalf("expected error for unknown state")
	}
}

func TestOperatingStateCodes(t *testing.T) {
	if c := OperatingStateCode(simulation.StateAlarm); c != 2 {
		t.Fatalf("Alarm code = %d, want 2", c)
	}
	if c := OperatingStateCode(simulation.OperatingState(42)); c != -1 {
		t.Fatalf("unknown code = %d, want -1", c)
	}
	if n := OperatingStateName(simulation.OperatingState(42)); n != "Unknown" {
		t.Fatalf("unknown name = %q", n)
	}
}

func TestStatusFromSnapshot(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	snap := simulation.MachineSnapshot{
		Timestamp:      time.Date(2025, 1, 2, 3, 4, 5, 0, loc),
		SimulationTime: 12,
		State:          simulation.StateRunning,
		Program:        simulation.ProgramStatus{Name: "PART_002", Active: true, Progress: 0.25},
		Spindle:        simulation.SpindleState{Speed: 1500, Load: 40},
		Tool:           simulation.ToolState{Number: 4, LifeRemaining: 15, Lifecycle: simulation.ToolWorn},
		Vibration:      simulation.VibrationState{X: 3, Y: 4, Overall: 5},
		Production:     simulation.ProductionCounters{PartsProduced: 20, GoodParts: 19, RejectedParts: 1, Efficiency: 95},
	}

	st := StatusFromSnapshot(snap)
	if st.State != "Running" || st.StateCode != 1 {
		t.Fatalf("state = %q/%d", st.State, st.StateCode)
	}
	if st.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp not UTC: %v", st.Timestamp)
	}
	if st.Tool.State != "Worn" || st.Tool.Number != 4 {
		t.Fatalf("tool = %+v", st.Tool)
	}
	if st.Production.Efficiency != 95 || st.Program.Name != "PART_002" {
		t.Fatalf("unexpected status: %+v", st)
	}

	b, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	vib := m["vibration"].(map[string]any)
	if vib["overall"].(float64) != 5 || vib["x_axis"].(float64) != 3 {
		t.Fatalf("vibration json = %v", vib)
	}
}
