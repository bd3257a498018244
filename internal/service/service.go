package service

import (
	"context"
	"time"

	cnc "cnc_simulator"
	"cnc_simulator/internal/logger"
	"cnc_simulator/internal/models"
	"cnc_simulator/internal/repository"
	"cnc_simulator/internal/simulation"
)

// Authorization manages operator accounts and their bearer tokens.
type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Machine exposes operator commands. Each returns the status right after the
// command was applied.
type Machine interface {
	EmergencyStop(ctx context.Context) (cnc.MachineStatus, error)
	ChangeTool(ctx context.Context, toolNumber int) (cnc.MachineStatus, error)
	ResetProductionCounters(ctx context.Context) (cnc.MachineStatus, error)
	SetFeedOverride(ctx context.Context, percent float64) (cnc.MachineStatus, error)
	SetState(ctx context.Context, state string) (cnc.MachineStatus, error)
}

// Monitoring exposes read-only machine data.
type Monitoring interface {
	GetStatus(ctx context.Context) (cnc.MachineStatus, error)
	GetInfo() cnc.MachineInfo
}

// EventLog exposes the append-only machine event log.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.MachineEvent, error)
}

// Simulator drives the engine in the background until ctx is canceled.
type Simulator interface {
	Run(ctx context.Context, interval time.Duration)
	Tick(ctx context.Context, dt float64) (cnc.MachineStatus, error)
}

// Observer receives tick results. internal/metrics implements it.
type Observer interface {
	ObserveStatus(s cnc.MachineStatus)
	ObserveEvent(eventType string)
	ObserveTick(d time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveStatus(cnc.MachineStatus) {}

func (nopObserver) ObserveEvent(string) {}

func (nopObserver) ObserveTick(time.Duration, error) {}

type Service struct {
	Machine
	Monitoring
	EventLog
	Simulator
	Authorization
}

// Deps carries everything NewService needs beyond the repositories.
type Deps struct {
	Engine   *simulation.Engine
	Info     cnc.MachineInfo
	Auth     AuthConfig
	Observer Observer // optional
	Log      *logger.Logger
}

func NewService(repos *repository.Repository, d Deps) *Service {
	obs := d.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	rt := NewRuntime(d.Engine)

	return &Service{
		Machine:       NewMachineService(rt, repos.StateRepo, repos.EventRepo, obs),
		Monitoring:    NewMonitoringService(rt, repos.StateRepo, d.Info),
		EventLog:      NewEventLogService(repos.EventRepo),
		Simulator:     NewSimulatorService(rt, repos.StateRepo, repos.EventRepo, obs, log),
		Authorization: NewAuthService(repos.Operators, d.Auth),
	}
}
