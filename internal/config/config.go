package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	cnc "cnc_simulator"
	"cnc_simulator/internal/simulation"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CNC_PORT or
// CNC_SIMULATION_SEED.
const EnvPrefix = "CNC"

type Config struct {
	Port       string           `mapstructure:"port"`
	DB         DBConfig         `mapstructure:"db"`
	Log        LogConfig        `mapstructure:"log"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Machine    cnc.MachineInfo  `mapstructure:"machine"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type SimulationConfig struct {
	UpdateInterval        time.Duration   `mapstructure:"update_interval"`
	Seed                  uint64          `mapstructure:"seed"` // 0 seeds from the clock
	NoiseFactor           float64         `mapstructure:"noise_factor"`
	StartProbability      float64         `mapstructure:"p_start"`
	AlarmProbability      float64         `mapstructure:"p_alarm"`
	AlarmClearProbability float64         `mapstructure:"p_alarm_clear"`
	QualityProbability    float64         `mapstructure:"p_quality"`
	Spindle               SpindleConfig   `mapstructure:"spindle"`
	Tool                  ToolConfig      `mapstructure:"tool"`
	Programs              []ProgramConfig `mapstructure:"programs"`
}

type SpindleConfig struct {
	Acceleration float64 `mapstructure:"acceleration"`
}

type ToolConfig struct {
	BaseWearRate float64 `mapstructure:"base_wear_rate"`
	MaxWear      float64 `mapstructure:"max_wear"`
}

type ProgramConfig struct {
	Name          string    `mapstructure:"name"`
	CycleTime     float64   `mapstructure:"cycle_time"`
	SpindleSpeeds []float64 `mapstructure:"spindle_speeds"`
}

var (
	ErrInvalidInterval    = errors.New("simulation.update_interval must be positive")
	ErrInvalidProbability = errors.New("probability must be within [0, 1]")
	ErrMissingSigningKey  = errors.New("auth.signing_key must not be empty")
)

func setDefaults(v *viper.Viper) {
	sim := simulation.DefaultConfig()

	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "cnc.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("machine.name", "CNC-01")
	v.SetDefault("machine.model", "VMC-850")
	v.SetDefault("machine.manufacturer", "Generic Machine Tools")
	v.SetDefault("machine.serial_number", "SIM-0001")
	v.SetDefault("simulation.update_interval", time.Second)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.noise_factor", sim.NoiseFactor)
	v.SetDefault("simulation.p_start", sim.StartProbability)
	v.SetDefault("simulation.p_alarm", sim.AlarmProbability)
	v.SetDefault("simulation.p_alarm_clear", sim.AlarmClearProbability)
	v.SetDefault("simulation.p_quality", sim.QualityProbability)
	v.SetDefault("simulation.spindle.acceleration", sim.Spindle.Acceleration)
	v.SetDefault("simulation.tool.base_wear_rate", sim.Tool.BaseWearRate)
	v.SetDefault("simulation.tool.max_wear", sim.Tool.MaxWear)
	v.SetDefault("metrics.enabled", true)
}

// Load reads config.yml from dir (if present), a .env file from the working
// directory (if present) and CNC_* environment variables, in increasing order
// of precedence.
func Load(dir string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Simulation.UpdateInterval <= 0 {
		return ErrInvalidInterval
	}
	probs := map[string]float64{
		"p_start":       c.Simulation.StartProbability,
		"p_alarm":       c.Simulation.AlarmProbability,
		"p_alarm_clear": c.Simulation.AlarmClearProbability,
		"p_quality":     c.Simulation.QualityProbability,
	}
	for name, p := range probs {
		if p < 0 || p > 1 {
			return fmt.Errorf("simulation.%s=%v: %w", name, p, ErrInvalidProbability)
		}
	}
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return ErrMissingSigningKey
	}
	return nil
}

// EngineConfig returns the engine parameters. An empty program list falls back
// to the built-in catalog.
func (c *Config) EngineConfig() simulation.Config {
	s := c.Simulation
	out := simulation.Config{
		NoiseFactor:           s.NoiseFactor,
		StartProbability:      s.StartProbability,
		AlarmProbability:      s.AlarmProbability,
		AlarmClearProbability: s.AlarmClearProbability,
		QualityProbability:    s.QualityProbability,
		Spindle:               simulation.SpindleConfig{Acceleration: s.Spindle.Acceleration},
		Tool:                  simulation.ToolConfig{BaseWearRate: s.Tool.BaseWearRate, MaxWear: s.Tool.MaxWear},
		Programs:              simulation.DefaultPrograms(),
	}
	if len(s.Programs) > 0 {
		out.Programs = make([]simulation.Program, 0, len(s.Programs))
		for _, p := range s.Programs {
			out.Programs = append(out.Programs, simulation.Program{
				Name:          p.Name,
				CycleTime:     p.CycleTime,
				SpindleSpeeds: append([]float64(nil), p.SpindleSpeeds...),
			})
		}
	}
	return out
}
