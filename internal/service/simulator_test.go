package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cnc_simulator/internal/models"
	"cnc_simulator/internal/simulation"
)

func newSimulator(e *simulation.Engine) (*SimulatorService, *stateRepoStub, *eventRepoStub, *observerStub) {
	sr, er, obs := &stateRepoStub{}, &eventRepoStub{}, &observerStub{}
	return NewSimulatorService(NewRuntime(e), sr, er, obs, nil), sr, er, obs
}

func TestSimulatorService_TickPersistsAndLogsProgramLifecycle(t *testing.T) {
	e := busyEngine(simulation.Program{Name: "SHORT", CycleTime: 3, SpindleSpeeds: []float64{1200}})
	svc, sr, er, obs := newSimulator(e)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.Tick(ctx, 1); err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
	}

	if len(sr.saved) != 5 {
		t.Fatalf("saved %d statuses, want 5", len(sr.saved))
	}
	if sr.saved[0].State != "Running" || sr.saved[0].Program.Name != "SHORT" {
		t.Fatalf("first status = %+v", sr.saved[0])
	}

	got := er.types()
	want := []string{models.EventStart, models.EventComplete}
	if len(got) < 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("events = %v, want prefix %v", got, want)
	}
	meta := er.events[1].Metadata.(map[string]any)
	if meta["program"] != "SHORT" || meta["from"] != "Running" || meta["to"] != "Idle" {
		t.Fatalf("complete metadata = %v", meta)
	}
	if obs.ticks != 5 || obs.tickErrs != 0 || obs.statuses != 5 {
		t.Fatalf("observer = %+v", obs)
	}
}

func TestSimulatorService_TickErrors(t *testing.T) {
	svc, _, _, obs := newSimulator(nil)
	if _, err := svc.Tick(context.Background(), 1); !errors.Is(err, simulation.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if obs.tickErrs != 1 {
		t.Fatalf("failed tick should be observed")
	}

	svc, sr, _, _ := newSimulator(busyEngine())
	sr.saveErr = errors.New("locked")
	if _, err := svc.Tick(context.Background(), 1); err == nil {
		t.Fatalf("expected save error")
	}
}

func TestSimulatorService_RunStopsOnCancel(t *testing.T) {
	svc, sr, _, _ := newSimulator(busyEngine())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		sr.mu.Lock()
		n := len(sr.saved)
		sr.mu.Unlock()
		if n >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("simulator did not tick")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestTickEvents(t *testing.T) {
	idle := simulation.MachineSnapshot{State: simulation.StateIdle}
	running := simulation.MachineSnapshot{
		State:   simulation.StateRunning,
		Program: simulation.ProgramStatus{Name: "PART_001", Active: true, Progress: 0.4},
	}
	alarm := simulation.MachineSnapshot{State: simulation.StateAlarm}

	cases := []struct {
		name       string
		prev, next simulation.MachineSnapshot
		want       string
	}{
		{"no change", idle, idle, ""},
		{"start", idle, running, models.EventStart},
		{"complete", running, idle, models.EventComplete},
		{"alarm", running, alarm, models.EventAlarm},
		{"clear", alarm, idle, models.EventAlarmCleared},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			evs := tickEvents(tc.prev, tc.next)
			if tc.want == "" {
				if len(evs) != 0 {
					t.Fatalf("expected no events, got %+v", evs)
				}
				return
			}
			if len(evs) != 1 || evs[0].Type != tc.want {
				t.Fatalf("events = %+v, want %s", evs, tc.want)
			}
		})
	}

	evs := tickEvents(running, alarm)
	if meta := evs[0].Metadata.(map[string]any); meta["program"] != "PART_001" {
		t.Fatalf("alarm should name the interrupted program: %v", meta)
	}
}
