package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	cnc "cnc_simulator"
	"cnc_simulator/internal/models"
	"cnc_simulator/internal/repository"
	"cnc_simulator/internal/simulation"
)

// ErrInvalidInput marks command arguments the caller must fix.
var ErrInvalidInput = errors.New("invalid input")

type MachineService struct {
	rt        *Runtime
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	observer  Observer
	now       func() time.Time
}

func NewMachineService(rt *Runtime, stateRepo repository.StateRepo, eventRepo repository.EventRepo, obs Observer) *MachineService {
	if obs == nil {
		obs = nopObserver{}
	}
	return &MachineService{rt: rt, stateRepo: stateRepo, eventRepo: eventRepo, observer: obs, now: time.Now}
}

// EmergencyStop forces Alarm from any state and cancels the running program.
func (s *MachineService) EmergencyStop(ctx context.Context) (cnc.MachineStatus, error) {
	before, after, err := s.rt.Do(func(e *simulation.Engine) error { return e.EmergencyStop() })
	if err != nil {
		return cnc.MachineStatus{}, err
	}
	meta := map[string]any{"from": cnc.OperatingStateName(before.State)}
	if before.Program.Active {
		meta["program"] = before.Program.Name
		meta["progress"] = before.Program.Progress
	}
	return s.commit(ctx, after, models.EventEmergencyStop, "Emergency stop", meta)
}

// ChangeTool mounts a fresh tool. Tool numbers start at 1.
func (s *MachineService) ChangeTool(ctx context.Context, toolNumber int) (cnc.MachineStatus, error) {
	if toolNumber < 1 {
		return cnc.MachineStatus{}, fmt.Errorf("%w: tool number must be >= 1, got %d", ErrInvalidInput, toolNumber)
	}
	before, after, err := s.rt.Do(func(e *simulation.Engine) error { return e.ChangeTool(toolNumber) })
	if err != nil {
		return cnc.MachineStatus{}, err
	}
	return s.commit(ctx, after, models.EventToolChange, fmt.Sprintf("Tool %d loaded", toolNumber), map[string]any{
		"tool_number":         toolNumber,
		"previous_tool":       before.Tool.Number,
		"previous_life":       before.Tool.LifeRemaining,
		"previous_tool_state": cnc.ToolLifecycleName(before.Tool.Lifecycle),
	})
}

// ResetProductionCounters zeroes part counters and efficiency.
func (s *MachineService) ResetProductionCounters(ctx context.Context) (cnc.MachineStatus, error) {
	before, after, err := s.rt.Do(func(e *simulation.Engine) error { return e.ResetProductionCounters() })
	if err != nil {
		return cnc.MachineStatus{}, err
	}
	return s.commit(ctx, after, models.EventCountersReset, "Production counters reset", map[string]any{
		"parts_produced": before.Production.PartsProduced,
		"good_parts":     before.Production.GoodParts,
		"rejected_parts": before.Production.RejectedParts,
	})
}

func (s *MachineService) SetFeedOverride(ctx context.Context, percent float64) (cnc.MachineStatus, error) {
	before, after, err := s.rt.Do(func(e *simulation.Engine) error { return e.SetFeedOverride(percent) })
	if errors.Is(err, simulation.ErrInvalidOverride) {
		return cnc.MachineStatus{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err != nil {
		return cnc.MachineStatus{}, err
	}
	return s.commit(ctx, after, models.EventOverrideChange, fmt.Sprintf("Feed override set to %.0f%%", percent), map[string]any{
		"from": before.Feed.Override,
		"to":   percent,
	})
}

// SetState accepts a wire state name. Only Idle, Maintenance and Setup can be
// entered from outside.
func (s *MachineService) SetState(ctx context.Context, name string) (cnc.MachineStatus, error) {
	target, err := cnc.ParseOperatingState(name)
	if err != nil {
		return cnc.MachineStatus{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	before, after, err := s.rt.Do(func(e *simulation.Engine) error { return e.SetState(target) })
	if errors.Is(err, simulation.ErrInvalidTransition) {
		return cnc.MachineStatus{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err != nil {
		return cnc.MachineStatus{}, err
	}
	from, to := cnc.OperatingStateName(before.State), cnc.OperatingStateName(after.State)
	return s.commit(ctx, after, models.EventStateChange, fmt.Sprintf("State changed from %s to %s", from, to), map[string]any{
		"from": from,
		"to":   to,
	})
}

// commit persists the post-command snapshot and records the event.
func (s *MachineService) commit(ctx context.Context, snap simulation.MachineSnapshot, typ, desc string, meta map[string]any) (cnc.MachineStatus, error) {
	status := cnc.StatusFromSnapshot(snap)
	if err := s.stateRepo.Save(ctx, status); err != nil {
		return status, fmt.Errorf("save machine state: %w", err)
	}
	meta["sim_time"] = snap.SimulationTime
	if err := s.eventRepo.Append(ctx, models.MachineEvent{
		OccurredAt:  s.now(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	}); err != nil {
		return status, fmt.Errorf("append %s event: %w", typ, err)
	}
	s.observer.ObserveEvent(typ)
	s.observer.ObserveStatus(status)
	return status, nil
}
