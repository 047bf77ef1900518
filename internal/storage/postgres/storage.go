package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/opticart/checkout/internal/domain/errors"
	"github.com/opticart/checkout/internal/domain/model"
	"github.com/opticart/checkout/internal/domain/repository"
)

// pool is the subset of pgxpool.Pool the journal needs; pgxmock satisfies it.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// Storage is the checkout-attempt journal backed by PostgreSQL. Append-only:
// the orchestration never reads flow state back from it.
type Storage struct {
	pool   pool
	logger *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pgPool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pgPool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pgPool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Attempts exposes the journal repository.
func (s *Storage) Attempts() repository.AttemptJournal {
	return &attemptJournal{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS checkout_attempts (
            id TEXT PRIMARY KEY,
            method TEXT NOT NULL,
            total BIGINT NOT NULL,
            state TEXT NOT NULL,
            order_id TEXT,
            reason TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_checkout_attempts_created ON checkout_attempts(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

type attemptJournal struct {
	storage *Storage
}

func (j *attemptJournal) RecordSubmission(ctx context.Context, id string, method model.PaymentMethod, total int64) error {
	const query = `INSERT INTO checkout_attempts (id, method, total, state)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (id) DO NOTHING`
	_, err := j.storage.pool.Exec(ctx, query, id, string(method), total, string(model.CheckoutStateCreatingOrder))
	return err
}

func (j *attemptJournal) RecordOutcome(ctx context.Context, id string, outcome model.CheckoutOutcome) error {
	const query = `UPDATE checkout_attempts
                   SET state=$1, order_id=$2, reason=$3, updated_at=NOW()
                   WHERE id=$4`
	tag, err := j.storage.pool.Exec(ctx, query, string(outcome.Status), nullable(outcome.OrderID), nullable(outcome.Reason), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (j *attemptJournal) ListRecent(ctx context.Context, limit int) ([]model.CheckoutAttempt, error) {
	const query = `SELECT id, method, total, state, order_id, reason, created_at, updated_at
                   FROM checkout_attempts ORDER BY created_at DESC LIMIT $1`
	rows, err := j.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CheckoutAttempt
	for rows.Next() {
		var (
			a       model.CheckoutAttempt
			method  string
			state   string
			orderID *string
			reason  *string
		)
		if err := rows.Scan(&a.ID, &method, &a.Total, &state, &orderID, &reason, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Method = model.PaymentMethod(method)
		a.State = model.CheckoutState(state)
		if orderID != nil {
			a.OrderID = *orderID
		}
		if reason != nil {
			a.Reason = *reason
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
