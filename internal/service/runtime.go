package service

import (
	"sync"

	"cnc_simulator/internal/simulation"
)

// Runtime serializes access to the engine, which is not safe for concurrent
// use. The simulation loop and the HTTP commands both go through it.
type Runtime struct {
	mu     sync.Mutex
	engine *simulation.Engine
}

func NewRuntime(e *simulation.Engine) *Runtime {
	return &Runtime{engine: e}
}

// Step advances the engine and returns the snapshots before and after.
func (r *Runtime) Step(dt float64) (prev, next simulation.MachineSnapshot, err error) {
	return r.Do(func(e *simulation.Engine) error {
		_, err := e.Update(dt)
		return err
	})
}

// Do runs fn under the lock and returns the snapshots around it. fn's error
// is returned as is; after is only meaningful when err is nil.
func (r *Runtime) Do(fn func(e *simulation.Engine) error) (before, after simulation.MachineSnapshot, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if before, err = r.engine.Snapshot(); err != nil {
		return before, after, err
	}
	if err = fn(r.engine); err != nil {
		return before, before, err
	}
	after, err = r.engine.Snapshot()
	return before, after, err
}

func (r *Runtime) Snapshot() (simulation.MachineSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Snapshot()
}
