package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine() (*StateMachine, *ProgramScheduler) {
	return NewStateMachine(DefaultConfig()), NewProgramScheduler(DefaultPrograms())
}

func TestStateMachine_IdleStartsProgramBelowThreshold(t *testing.T) {
	m, s := newTestMachine()
	var counters ProductionCounters

	_, changed := m.Step(1, s, &stubRandom{unit: 0.5}, &counters)
	assert.False(t, changed)
	assert.Equal(t, StateIdle, m.State())

	tr, changed := m.Step(2, s, &stubRandom{unit: 0.01}, &counters)
	require.True(t, changed)
	assert.Equal(t, Transition{From: StateIdle, To: StateRunning, Reason: ReasonProgramStarted}, tr)
	assert.True(t, s.Active())
}

func TestStateMachine_RunningCompletesProgram(t *testing.T) {
	m, s := newTestMachine()
	counters := ProductionCounters{PartsProduced: 19, GoodParts: 18, RejectedParts: 1}

	_, _ = m.Step(0, s, &stubRandom{unit: 0}, &counters)
	require.Equal(t, StateRunning, m.State())
	s.Advance(1000)

	tr, changed := m.Step(1000, s, &stubRandom{unit: 0.1}, &counters)
	require.True(t, changed)
	assert.Equal(t, ReasonProgramCompleted, tr.Reason)
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, 20, counters.PartsProduced)
	assert.Equal(t, counters.GoodParts+counters.RejectedParts, counters.PartsProduced)
	assert.InDelta(t, 95.0, counters.Efficiency, 1e-9)
	assert.False(t, s.Active())
}

func TestStateMachine_RunningRaisesAlarm(t *testing.T) {
	m, s := newTestMachine()
	var counters ProductionCounters
	_, _ = m.Step(0, s, &stubRandom{unit: 0}, &counters)
	s.Advance(10)

	// 0.0005 < p_alarm (0.001)
	tr, changed := m.Step(10, s, &stubRandom{unit: 0.0005}, &counters)
	require.True(t, changed)
	assert.Equal(t, Transition{From: StateRunning, To: StateAlarm, Reason: ReasonRandomAlarm}, tr)
	assert.False(t, s.Active())
	assert.Equal(t, 0, counters.PartsProduced)
}

func TestStateMachine_RunningStaysRunningMidCycle(t *testing.T) {
	m, s := newTestMachine()
	var counters ProductionCounters
	_, _ = m.Step(0, s, &stubRandom{unit: 0}, &counters)
	s.Advance(10)

	_, changed := m.Step(10, s, &stubRandom{unit: 0.5}, &counters)
	assert.False(t, changed)
	assert.Equal(t, StateRunning, m.State())
}

func TestStateMachine_AlarmClears(t *testing.T) {
	m, s := newTestMachine()
	var counters ProductionCounters
	m.Force(StateAlarm, ReasonEmergencyStop)

	_, changed := m.Step(1, s, &stubRandom{unit: 0.5}, &counters)
	assert.False(t, changed)

	tr, changed := m.Step(2, s, &stubRandom{unit: 0.05}, &counters)
	require.True(t, changed)
	assert.Equal(t, ReasonAlarmCleared, tr.Reason)
	assert.Equal(t, StateIdle, m.State())
}

func TestStateMachine_MaintenanceAndSetupNeverExitAutomatically(t *testing.T) {
	for _, st := range []OperatingState{StateMaintenance, StateSetup} {
		t.Run(st.String(), func(t *testing.T) {
			m, s := newTestMachine()
			var counters ProductionCounters
			m.Force(st, ReasonExternal)

			// A zero draw would fire every stochastic transition.
			for i := 0; i < 1000; i++ {
				_, changed := m.Step(float64(i), s, &stubRandom{unit: 0}, &counters)
				require.False(t, changed)
			}
			assert.Equal(t, st, m.State())
			assert.False(t, s.Active())
		})
	}
}

func TestLifecycleFor(t *testing.T) {
	cases := []struct {
		life float64
		want ToolLifecycle
	}{
		{100, ToolNew},
		{80.01, ToolNew},
		{80, ToolGood},
		{20.5, ToolGood},
		{20, ToolWorn},
		{5.5, ToolWorn},
		{5, ToolBroken},
		{0, ToolBroken},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, lifecycleFor(tc.life), "life=%v", tc.life)
	}
}
