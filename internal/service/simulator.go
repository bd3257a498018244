package service

import (
	"context"
	"fmt"
	"time"

	cnc "cnc_simulator"
	"cnc_simulator/internal/logger"
	"cnc_simulator/internal/models"
	"cnc_simulator/internal/repository"
	"cnc_simulator/internal/simulation"
)

// SimulatorService steps the engine on a ticker, persists the latest status
// and records the discrete events each tick produced.
type SimulatorService struct {
	rt        *Runtime
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	observer  Observer
	log       *logger.Logger
}

func NewSimulatorService(rt *Runtime, stateRepo repository.StateRepo, eventRepo repository.EventRepo, obs Observer, log *logger.Logger) *SimulatorService {
	if obs == nil {
		obs = nopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SimulatorService{rt: rt, stateRepo: stateRepo, eventRepo: eventRepo, observer: obs, log: log}
}

// Run advances simulated time by interval on every tick until ctx is
// canceled. A failed tick is logged and the loop carries on.
func (s *SimulatorService) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	s.log.Infow("simulator_started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			s.log.Infow("simulator_stopped")
			return
		case <-t.C:
			if _, err := s.Tick(ctx, interval.Seconds()); err != nil {
				s.log.Errorw("sim_tick_failed", "err", err)
			}
		}
	}
}

// Tick performs a single step of dt simulated seconds.
func (s *SimulatorService) Tick(ctx context.Context, dt float64) (cnc.MachineStatus, error) {
	start := time.Now()
	status, err := s.tick(ctx, dt)
	s.observer.ObserveTick(time.Since(start), err)
	return status, err
}

func (s *SimulatorService) tick(ctx context.Context, dt float64) (cnc.MachineStatus, error) {
	prev, next, err := s.rt.Step(dt)
	if err != nil {
		return cnc.MachineStatus{}, fmt.Errorf("step engine: %w", err)
	}

	status := cnc.StatusFromSnapshot(next)
	s.observer.ObserveStatus(status)
	if err := s.stateRepo.Save(ctx, status); err != nil {
		return status, fmt.Errorf("save machine state: %w", err)
	}

	for _, ev := range tickEvents(prev, next) {
		if err := s.eventRepo.Append(ctx, ev); err != nil {
			return status, fmt.Errorf("append %s event: %w", ev.Type, err)
		}
		s.observer.ObserveEvent(ev.Type)
		s.log.Debugw("machine_event", "type", ev.Type, "description", ev.Description, "sim_time", next.SimulationTime)
	}
	return status, nil
}

// tickEvents derives log entries from the state change between two
// consecutive snapshots. The state machine makes at most one transition per
// tick, so at most one event comes back.
func tickEvents(prev, next simulation.MachineSnapshot) []models.MachineEvent {
	if prev.State == next.State {
		return nil
	}
	ev := models.MachineEvent{OccurredAt: next.Timestamp}
	meta := map[string]any{"sim_time": next.SimulationTime}

	switch {
	case next.State == simulation.StateRunning:
		ev.Type = models.EventStart
		ev.Description = fmt.Sprintf("Program %s started", next.Program.Name)
		meta["program"] = next.Program.Name
	case prev.State == simulation.StateRunning && next.State == simulation.StateIdle:
		ev.Type = models.EventComplete
		ev.Description = fmt.Sprintf("Program %s completed", prev.Program.Name)
		meta["program"] = prev.Program.Name
		meta["cycle_time"] = next.Production.CycleTime
		meta["good"] = next.Production.GoodParts > prev.Production.GoodParts
		meta["parts_produced"] = next.Production.PartsProduced
	case next.State == simulation.StateAlarm:
		ev.Type = models.EventAlarm
		ev.Description = "Machine alarm raised"
		if prev.Program.Active {
			meta["program"] = prev.Program.Name
			meta["progress"] = prev.Program.Progress
		}
	case prev.State == simulation.StateAlarm:
		ev.Type = models.EventAlarmCleared
		ev.Description = "Machine alarm cleared"
	default:
		ev.Type = models.EventStateChange
		ev.Description = fmt.Sprintf("State changed from %s to %s", cnc.OperatingStateName(prev.State), cnc.OperatingStateName(next.State))
	}
	meta["from"] = cnc.OperatingStateName(prev.State)
	meta["to"] = cnc.OperatingStateName(next.State)
	ev.Metadata = meta
	return []models.MachineEvent{ev}
}
