// Package simulation is the time-stepped model of a CNC machining center.
//
// An Engine owns one mutable machine context. Each call to Update advances
// simulated time, evaluates the operating state machine and the program
// scheduler, then runs the subsystem models in a fixed order (spindle, feed,
// tool wear, vibration, auxiliary) and returns a fresh MachineSnapshot.
//
// Engines are not safe for concurrent use. Callers serialize Update and the
// command methods, typically by confining the engine to one goroutine or
// guarding it with a single mutex.
package simulation

import (
	"errors"
	"time"
)

var (
	// ErrNotInitialized is returned by every operation on an Engine that was
	// not built with New.
	ErrNotInitialized    = errors.New("simulation engine not initialized")
	ErrInvalidOverride   = errors.New("feed override must be greater than zero")
	ErrInvalidTransition = errors.New("operating state cannot be set externally")
)

// Option customises an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine advances the machine context one tick at a time.
type Engine struct {
	cfg       Config
	rnd       RandomSource
	now       func() time.Time
	machine   *StateMachine
	scheduler *ProgramScheduler

	simTime float64
	last    MachineSnapshot
	ready   bool
}

// New builds an engine in the idle power-on state. A nil rnd gets a
// time-seeded source of its own.
func New(cfg Config, rnd RandomSource, opts ...Option) *Engine {
	if rnd == nil {
		rnd = NewTimeSeededSource()
	}
	e := &Engine{
		cfg:       cfg,
		rnd:       rnd,
		now:       time.Now,
		machine:   NewStateMachine(cfg),
		scheduler: NewProgramScheduler(cfg.Programs),
		ready:     true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.last = initialSnapshot()
	e.last.Timestamp = e.now()
	return e
}

// Update advances simulated time by dt seconds and returns the new snapshot.
// A non-positive dt leaves the machine untouched and returns the current
// snapshot.
func (e *Engine) Update(dt float64) (MachineSnapshot, error) {
	if !e.initialized() {
		return MachineSnapshot{}, ErrNotInitialized
	}
	if !(dt > 0) {
		return e.last, nil
	}
	e.simTime += dt

	production := e.last.Production
	e.machine.Step(e.simTime, e.scheduler, e.rnd, &production)
	running := e.machine.State() == StateRunning
	progress := e.scheduler.Advance(e.simTime)

	target := 0.0
	if running {
		target = e.scheduler.TargetSpeed()
	}
	spindle := stepSpindle(e.last.Spindle, spindleDrive{
		TargetSpeed:  target,
		Acceleration: e.cfg.Spindle.Acceleration,
		NoiseFactor:  e.cfg.NoiseFactor,
	}, dt, e.rnd)

	feed := stepFeed(e.last.Feed, feedDrive{
		Running:        running,
		Progress:       progress,
		SimulationTime: e.simTime,
		NoiseFactor:    e.cfg.NoiseFactor,
	}, dt, e.rnd)

	tool := stepToolWear(e.last.Tool, running, e.cfg.Tool, dt, e.rnd)

	vibration := stepVibration(vibrationInput{
		Running:       running,
		SpindleSpeed:  spindle.Speed,
		SpindleLoad:   spindle.Load,
		FeedRate:      feed.Rate,
		LifeRemaining: tool.LifeRemaining,
	}, e.rnd)

	aux := stepAuxiliary(e.last.Auxiliary, running, spindle.Load, dt, e.rnd)

	e.last = MachineSnapshot{
		Timestamp:      e.now(),
		SimulationTime: e.simTime,
		State:          e.machine.State(),
		Program:        e.scheduler.Status(),
		Spindle:        spindle,
		Feed:           feed,
		Tool:           tool,
		Vibration:      vibration,
		Production:     production,
		Auxiliary:      aux,
	}
	return e.last, nil
}

// Snapshot returns the most recent snapshot without advancing time.
func (e *Engine) Snapshot() (MachineSnapshot, error) {
	if !e.initialized() {
		return MachineSnapshot{}, ErrNotInitialized
	}
	return e.last, nil
}

// ResetProductionCounters zeroes part counts and efficiency. The last cycle
// time is kept.
func (e *Engine) ResetProductionCounters() error {
	if !e.initialized() {
		return ErrNotInitialized
	}
	e.last.Production.PartsProduced = 0
	e.last.Production.GoodParts = 0
	e.last.Production.RejectedParts = 0
	e.last.Production.Efficiency = 0
	return nil
}

// EmergencyStop forces the Alarm state from any state and cancels the active
// program.
func (e *Engine) EmergencyStop() error {
	if !e.initialized() {
		return ErrNotInitialized
	}
	e.scheduler.Cancel()
	e.machine.Force(StateAlarm, ReasonEmergencyStop)
	e.last.State = StateAlarm
	e.last.Program = e.scheduler.Status()
	return nil
}

// ChangeTool mounts tool number with zero wear. The number is taken as given
// and the operating state is left alone.
func (e *Engine) ChangeTool(number int) error {
	if !e.initialized() {
		return ErrNotInitialized
	}
	e.last.Tool = freshTool(number)
	return nil
}

// SetFeedOverride sets the operator feed override in percent.
func (e *Engine) SetFeedOverride(percent float64) error {
	if !e.initialized() {
		return ErrNotInitialized
	}
	if !(percent > 0) {
		return ErrInvalidOverride
	}
	e.last.Feed.Override = percent
	return nil
}

// SetState applies an operator-requested state change. Only Idle,
// Maintenance and Setup can be entered this way; Running is reached by
// starting a program and Alarm through EmergencyStop. Leaving Running
// cancels the active program.
func (e *Engine) SetState(state OperatingState) error {
	if !e.initialized() {
		return ErrNotInitialized
	}
	switch state {
	case StateIdle, StateMaintenance, StateSetup:
	default:
		return ErrInvalidTransition
	}
	e.scheduler.Cancel()
	e.machine.Force(state, ReasonExternal)
	e.last.State = state
	e.last.Program = e.scheduler.Status()
	return nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	cfg := e.cfg
	cfg.Programs = clonePrograms(e.cfg.Programs)
	return cfg
}

func (e *Engine) initialized() bool {
	return e != nil && e.ready
}
