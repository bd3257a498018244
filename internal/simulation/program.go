package simulation

// ProgramScheduler selects machining programs and tracks cycle progress.
type ProgramScheduler struct {
	programs   []Program
	current    int // index into programs, -1 when none is active
	cycleStart float64
	progress   float64
}

// NewProgramScheduler builds a scheduler over a private copy of the catalog.
func NewProgramScheduler(programs []Program) *ProgramScheduler {
	return &ProgramScheduler{
		programs: clonePrograms(programs),
		current:  -1,
	}
}

// Start picks a program uniformly at random and opens a cycle at simulation
// time now. It reports false when the catalog is empty.
func (s *ProgramScheduler) Start(now float64, rnd RandomSource) bool {
	if len(s.programs) == 0 {
		return false
	}
	s.current = rnd.IntN(len(s.programs))
	s.cycleStart = now
	s.progress = 0
	return true
}

// Advance recomputes progress for simulation time now and returns it.
func (s *ProgramScheduler) Advance(now float64) float64 {
	if !s.Active() {
		return s.progress
	}
	s.progress = cycleProgress(now-s.cycleStart, s.programs[s.current].CycleTime)
	return s.progress
}

func cycleProgress(elapsed, cycleTime float64) float64 {
	if cycleTime <= 0 {
		return 1
	}
	return clamp(elapsed/cycleTime, 0, 1)
}

// Complete closes the active cycle, classifies the finished part and returns
// the updated counters.
func (s *ProgramScheduler) Complete(now float64, counters ProductionCounters, qualityProbability float64, rnd RandomSource) ProductionCounters {
	cycleTime := now - s.cycleStart
	good := rnd.Float64() < qualityProbability
	s.Cancel()
	return recordPart(counters, good, cycleTime)
}

// Cancel drops the active program and resets progress.
func (s *ProgramScheduler) Cancel() {
	s.current = -1
	s.progress = 0
}

func (s *ProgramScheduler) Active() bool { return s.current >= 0 }

func (s *ProgramScheduler) Progress() float64 { return s.progress }

// TargetSpeed returns the spindle speed of the current program phase, or 0.
func (s *ProgramScheduler) TargetSpeed() float64 {
	if !s.Active() {
		return 0
	}
	speeds := s.programs[s.current].SpindleSpeeds
	if len(speeds) == 0 {
		return 0
	}
	idx := int(s.progress * float64(len(speeds)))
	if idx >= len(speeds) {
		idx = len(speeds) - 1
	}
	return speeds[idx]
}

func (s *ProgramScheduler) Status() ProgramStatus {
	if !s.Active() {
		return ProgramStatus{}
	}
	return ProgramStatus{
		Name:     s.programs[s.current].Name,
		Active:   true,
		Progress: s.progress,
	}
}

// recordPart counts one finished part. Efficiency is only recomputed once at
// least one part exists.
func recordPart(c ProductionCounters, good bool, cycleTime float64) ProductionCounters {
	c.PartsProduced++
	if good {
		c.GoodParts++
	} else {
		c.RejectedParts++
	}
	c.CycleTime = cycleTime
	c.Efficiency = efficiency(c)
	return c
}

func efficiency(c ProductionCounters) float64 {
	total := c.GoodParts + c.RejectedParts
	if total == 0 {
		return c.Efficiency
	}
	return float64(c.GoodParts) / float64(total) * 100
}
