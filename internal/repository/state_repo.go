package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cnc "cnc_simulator"
)

// StateSQLite keeps the latest machine status in a single row. The full
// status is stored as JSON; state and simulation time are also kept as
// columns so the row can be inspected with plain SQL.
type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	machineStateRowID = 1

	upsertStateSQL = `
		INSERT INTO machine_state (id, state, sim_time, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state=excluded.state,
			sim_time=excluded.sim_time,
			payload=excluded.payload,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `SELECT payload FROM machine_state WHERE id=?`
)

// Save upserts the status row. A zero timestamp is replaced with now.
func (r *StateSQLite) Save(ctx context.Context, s cnc.MachineStatus) error {
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
	s.Timestamp = s.Timestamp.UTC()

	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal machine state: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, upsertStateSQL,
		machineStateRowID,
		s.State,
		s.SimulationTime,
		string(payload),
		s.Timestamp,
	); err != nil {
		return fmt.Errorf("upsert machine state: %w", err)
	}
	return nil
}

// Load returns ErrNoState when nothing has been saved yet.
func (r *StateSQLite) Load(ctx context.Context) (cnc.MachineStatus, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, selectStateSQL, machineStateRowID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return cnc.MachineStatus{}, ErrNoState
	}
	if err != nil {
		return cnc.MachineStatus{}, fmt.Errorf("select machine state: %w", err)
	}

	var s cnc.MachineStatus
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return cnc.MachineStatus{}, fmt.Errorf("decode machine state: %w", err)
	}
	return s, nil
}
