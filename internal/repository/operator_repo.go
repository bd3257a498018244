package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cnc_simulator/internal/models"
)

// ErrOperatorExists is returned by Create when the username is taken.
var ErrOperatorExists = errors.New("operator already exists")

type OperatorSQLite struct {
	db *sql.DB
}

func NewOperatorSQLite(db *sql.DB) *OperatorSQLite {
	return &OperatorSQLite{db: db}
}

var _ OperatorRepo = (*OperatorSQLite)(nil)

const (
	insertOperatorSQL       = `INSERT INTO operators (username, password_hash, created_at) VALUES (?, ?, ?)`
	selectOperatorByNameSQL = `SELECT id, username, password_hash, created_at FROM operators WHERE username = ?`
)

// Create stores a new operator and returns its ID.
func (r *OperatorSQLite) Create(ctx context.Context, op models.Operator) (int, error) {
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, insertOperatorSQL, op.Username, op.PasswordHash, op.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q", ErrOperatorExists, op.Username)
		}
		return 0, fmt.Errorf("insert operator %q: %w", op.Username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id for operator %q: %w", op.Username, err)
	}
	return int(id), nil
}

// GetByUsername returns (nil, nil) when no such operator exists.
func (r *OperatorSQLite) GetByUsername(ctx context.Context, username string) (*models.Operator, error) {
	var op models.Operator
	err := r.db.QueryRowContext(ctx, selectOperatorByNameSQL, username).
		Scan(&op.ID, &op.Username, &op.PasswordHash, &op.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select operator %q: %w", username, err)
	}
	return &op, nil
}

// modernc reports constraint violations only through the message text.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
