package simulation

// TransitionReason tells why the operating state changed.
type TransitionReason int

const (
	ReasonProgramStarted TransitionReason = iota
	ReasonProgramCompleted
	ReasonRandomAlarm
	ReasonAlarmCleared
	ReasonEmergencyStop
	ReasonExternal
)

// Transition records one operating state change.
type Transition struct {
	From   OperatingState
	To     OperatingState
	Reason TransitionReason
}

// StateMachine owns the operating state and the automatic transition policy:
//
//	Idle    -> Running  with StartProbability per tick
//	Running -> Idle     when the program completes
//	Running -> Alarm    with AlarmProbability per tick
//	Alarm   -> Idle     with AlarmClearProbability per tick
//
// Maintenance and Setup are only entered and left through Force.
type StateMachine struct {
	state          OperatingState
	startProb      float64
	alarmProb      float64
	alarmClearProb float64
	qualityProb    float64
}

func NewStateMachine(cfg Config) *StateMachine {
	return &StateMachine{
		state:          StateIdle,
		startProb:      cfg.StartProbability,
		alarmProb:      cfg.AlarmProbability,
		alarmClearProb: cfg.AlarmClearProbability,
		qualityProb:    cfg.QualityProbability,
	}
}

func (m *StateMachine) State() OperatingState { return m.state }

// Step evaluates the transition table once. A completed program updates
// counters in place.
func (m *StateMachine) Step(now float64, sched *ProgramScheduler, rnd RandomSource, counters *ProductionCounters) (Transition, bool) {
	switch m.state {
	case StateIdle:
		if rnd.Float64() < m.startProb && sched.Start(now, rnd) {
			return m.move(StateRunning, ReasonProgramStarted), true
		}
	case StateRunning:
		if sched.Active() && sched.Progress() >= 1 {
			*counters = sched.Complete(now, *counters, m.qualityProb, rnd)
			return m.move(StateIdle, ReasonProgramCompleted), true
		}
		if rnd.Float64() < m.alarmProb {
			sched.Cancel()
			return m.move(StateAlarm, ReasonRandomAlarm), true
		}
	case StateAlarm:
		if rnd.Float64() < m.alarmClearProb {
			return m.move(StateIdle, ReasonAlarmCleared), true
		}
	}
	return Transition{From: m.state, To: m.state}, false
}

// Force moves to state unconditionally, for commands issued from outside.
func (m *StateMachine) Force(state OperatingState, reason TransitionReason) Transition {
	return m.move(state, reason)
}

func (m *StateMachine) move(to OperatingState, reason TransitionReason) Transition {
	t := Transition{From: m.state, To: to, Reason: reason}
	m.state = to
	return t
}
