package service

import (
	"context"
	"testing"

	cnc "cnc_simulator"
	"cnc_simulator/internal/repository"
)

func TestNewService_WiresSharedRuntime(t *testing.T) {
	sr, er := &stateRepoStub{}, &eventRepoStub{}
	repos := &repository.Repository{StateRepo: sr, EventRepo: er, Operators: &operatorRepoStub{}}
	info := cnc.MachineInfo{Name: "CNC-01", SerialNumber: "SIM-0001"}

	svc := NewService(repos, Deps{Engine: busyEngine(), Info: info, Auth: testAuth})
	ctx := context.Background()

	if got := svc.Monitoring.GetInfo(); got != info {
		t.Fatalf("info = %+v", got)
	}
	if _, err := svc.Simulator.Tick(ctx, 1); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if _, err := svc.Machine.EmergencyStop(ctx); err != nil {
		t.Fatalf("EmergencyStop: %v", err)
	}

	// Commands and ticks act on the same engine the monitoring service reads.
	st, err := svc.Monitoring.GetStatus(ctx)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if st.State != "Alarm" || st.SimulationTime != 1 {
		t.Fatalf("status = %+v", st)
	}

	events, err := svc.EventLog.List(ctx, LogFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) == 0 || events[len(events)-1].Type != "EMERGENCY_STOP" {
		t.Fatalf("events = %v", er.types())
	}
}
