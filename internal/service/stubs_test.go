package service

import (
	"context"
	"sync"
	"time"

	cnc "cnc_simulator"
	"cnc_simulator/internal/models"
	"cnc_simulator/internal/simulation"
)

type stateRepoStub struct {
	mu      sync.Mutex
	saved   []cnc.MachineStatus
	saveErr error
	loaded  cnc.MachineStatus
	loadErr error
}

func (s *stateRepoStub) Save(ctx context.Context, st cnc.MachineStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, st)
	return s.saveErr
}

func (s *stateRepoStub) Load(ctx context.Context) (cnc.MachineStatus, error) {
	return s.loaded, s.loadErr
}

type eventRepoStub struct {
	mu        sync.Mutex
	events    []models.MachineEvent
	appendErr error
	listErr   error

	gotFrom, gotTo time.Time
	gotType        string
}

func (e *eventRepoStub) Append(ctx context.Context, ev models.MachineEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.appendErr != nil {
		return e.appendErr
	}
	e.events = append(e.events, ev)
	return nil
}

func (e *eventRepoStub) List(ctx context.Context, from, to time.Time, typ string) ([]models.MachineEvent, error) {
	e.gotFrom, e.gotTo, e.gotType = from, to, typ
	if e.listErr != nil {
		return nil, e.listErr
	}
	return e.events, nil
}

func (e *eventRepoStub) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

type observerStub struct {
	mu       sync.Mutex
	statuses int
	events   []string
	ticks    int
	tickErrs int
}

func (o *observerStub) ObserveStatus(cnc.MachineStatus) {
	o.mu.Lock()
	o.statuses++
	o.mu.Unlock()
}

func (o *observerStub) ObserveEvent(t string) {
	o.mu.Lock()
	o.events = append(o.events, t)
	o.mu.Unlock()
}

func (o *observerStub) ObserveTick(_ time.Duration, err error) {
	o.mu.Lock()
	o.ticks++
	if err != nil {
		o.tickErrs++
	}
	o.mu.Unlock()
}

var testNow = time.Date(2025, 4, 1, 6, 0, 0, 0, time.UTC)

// busyEngine starts a program on the first tick and never alarms on its own.
func busyEngine(programs ...simulation.Program) *simulation.Engine {
	cfg := simulation.DefaultConfig()
	cfg.StartProbability = 1
	cfg.AlarmProbability = 0
	if len(programs) > 0 {
		cfg.Programs = programs
	}
	return simulation.New(cfg, simulation.NewRandomSource(7), simulation.WithClock(func() time.Time { return testNow }))
}
