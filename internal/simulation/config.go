package simulation

// Config holds every tunable of the simulation. Values are not validated;
// out-of-range inputs are clamped where a model already clamps and passed
// through otherwise.
type Config struct {
	NoiseFactor float64

	StartProbability      float64 // Idle -> Running per tick
	AlarmProbability      float64 // Running -> Alarm per tick
	AlarmClearProbability float64 // Alarm -> Idle per tick
	QualityProbability    float64 // chance a finished part is good

	Spindle SpindleConfig
	Tool    ToolConfig

	Programs []Program
}

type SpindleConfig struct {
	Acceleration float64 // rpm per second
}

type ToolConfig struct {
	BaseWearRate float64 // mm per second of cutting
	MaxWear      float64 // mm at which life reaches zero
}

// Program is one entry of the machining program catalog.
type Program struct {
	Name          string
	CycleTime     float64   // seconds
	SpindleSpeeds []float64 // rpm, one per program phase
}

// DefaultPrograms returns the built-in program catalog.
func DefaultPrograms() []Program {
	return []Program{
		{Name: "PART_001", CycleTime: 180, SpindleSpeeds: []float64{2000, 3500, 1800}},
		{Name: "PART_002", CycleTime: 240, SpindleSpeeds: []float64{1500, 4200, 2800}},
		{Name: "PART_003", CycleTime: 150, SpindleSpeeds: []float64{3000, 2200, 3800}},
	}
}

// DefaultConfig returns the stock machine configuration.
func DefaultConfig() Config {
	return Config{
		NoiseFactor:           0.05,
		StartProbability:      0.02,
		AlarmProbability:      0.001,
		AlarmClearProbability: 0.1,
		QualityProbability:    0.95,
		Spindle: SpindleConfig{
			Acceleration: 500,
		},
		Tool: ToolConfig{
			BaseWearRate: 0.001,
			MaxWear:      0.2,
		},
		Programs: DefaultPrograms(),
	}
}

// clonePrograms deep-copies the catalog so callers cannot mutate engine state.
func clonePrograms(in []Program) []Program {
	out := make([]Program, len(in))
	for i, p := range in {
		out[i] = Program{
			Name:          p.Name,
			CycleTime:     p.CycleTime,
			SpindleSpeeds: append([]float64(nil), p.SpindleSpeeds...),
		}
	}
	return out
}
