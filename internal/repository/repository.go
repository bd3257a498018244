package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	cnc "cnc_simulator"
	"cnc_simulator/internal/models"
)

// ErrNoState is returned by StateRepo.Load before the first snapshot is saved.
var ErrNoState = errors.New("no machine state stored")

type OperatorRepo interface {
	Create(ctx context.Context, op models.Operator) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.Operator, error)
}

type StateRepo interface {
	Save(ctx context.Context, s cnc.MachineStatus) error
	Load(ctx context.Context) (cnc.MachineStatus, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.MachineEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.MachineEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Operators OperatorRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
		Operators: NewOperatorSQLite(db),
	}
}
