package service

import (
	"context"
	"errors"
	"testing"

	cnc "cnc_simulator"
	"cnc_simulator/internal/repository"
	"cnc_simulator/internal/simulation"
)

func TestMonitoringService_GetStatus_Live(t *testing.T) {
	e := busyEngine()
	_, _ = e.Update(1)
	svc := NewMonitoringService(NewRuntime(e), &stateRepoStub{loadErr: errors.New("must not be called")}, cnc.MachineInfo{})

	st, err := svc.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if st.State != "Running" || st.SimulationTime != 1 || !st.Timestamp.Equal(testNow) {
		t.Fatalf("status = %+v", st)
	}
}

func TestMonitoringService_GetStatus_FallsBackToStore(t *testing.T) {
	stored := cnc.MachineStatus{State: "Alarm", StateCode: 2, SimulationTime: 90}
	svc := NewMonitoringService(NewRuntime(nil), &stateRepoStub{loaded: stored}, cnc.MachineInfo{})

	st, err := svc.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if st.State != "Alarm" || st.SimulationTime != 90 {
		t.Fatalf("status = %+v", st)
	}
}

func TestMonitoringService_GetStatus_NothingAvailable(t *testing.T) {
	svc := NewMonitoringService(NewRuntime(nil), &stateRepoStub{loadErr: repository.ErrNoState}, cnc.MachineInfo{})
	if _, err := svc.GetStatus(context.Background()); !errors.Is(err, simulation.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}

	boom := errors.New("disk I/O error")
	svc = NewMonitoringService(NewRuntime(nil), &stateRepoStub{loadErr: boom}, cnc.MachineInfo{})
	if _, err := svc.GetStatus(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestMonitoringService_GetInfo(t *testing.T) {
	info := cnc.MachineInfo{Name: "CNC-01", Model: "VMC-850", Manufacturer: "Acme", SerialNumber: "SN1"}
	svc := NewMonitoringService(NewRuntime(nil), &stateRepoStub{}, info)
	if svc.GetInfo() != info {
		t.Fatalf("GetInfo = %+v", svc.GetInfo())
	}
}
