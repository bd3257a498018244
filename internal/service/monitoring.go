package service

import (
	"context"
	"errors"

	cnc "cnc_simulator"
	"cnc_simulator/internal/repository"
	"cnc_simulator/internal/simulation"
)

type MonitoringService struct {
	rt        *Runtime
	stateRepo repository.StateRepo
	info      cnc.MachineInfo
}

func NewMonitoringService(rt *Runtime, stateRepo repository.StateRepo, info cnc.MachineInfo) *MonitoringService {
	return &MonitoringService{rt: rt, stateRepo: stateRepo, info: info}
}

// GetStatus returns the live engine snapshot. Without a live engine it falls
// back to the last persisted status, and reports ErrNotInitialized when there
// is none.
func (s *MonitoringService) GetStatus(ctx context.Context) (cnc.MachineStatus, error) {
	snap, err := s.rt.Snapshot()
	if err == nil {
		return cnc.StatusFromSnapshot(snap), nil
	}
	if !errors.Is(err, simulation.ErrNotInitialized) {
		return cnc.MachineStatus{}, err
	}

	stored, lerr := s.stateRepo.Load(ctx)
	if errors.Is(lerr, repository.ErrNoState) {
		return cnc.MachineStatus{}, simulation.ErrNotInitialized
	}
	if lerr != nil {
		return cnc.MachineStatus{}, lerr
	}
	return stored, nil
}

func (s *MonitoringService) GetInfo() cnc.MachineInfo { return s.info }
