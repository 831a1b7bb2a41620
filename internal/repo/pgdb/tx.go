package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cs23b1093/gigflow/internal/repo/repo_errors"
	"github.com/cs23b1093/gigflow/pkg/postgres"

	"github.com/lib/pq"
)

type txKey struct{}

// Transactor begins a transaction and stores it in the context so that
// repo calls made inside fn share it. Nested calls reuse the outer tx.
type Transactor struct {
	*postgres.Postgres
}

func NewTransactor(p *postgres.Postgres) *Transactor {
	return &Transactor{p}
}

func (t *Transactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := t.Database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if isTransient(err) {
			return repo_errors.ErrTransient
		}

		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// runner is satisfied by both *sql.DB and *sql.Tx.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func runnerFromContext(ctx context.Context, db *sql.DB) runner {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}

	return db
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// serialization_failure and deadlock_detected: safe to retry.
func isTransient(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && (pqErr.Code == "40001" || pqErr.Code == "40P01")
}

// classify maps low-level driver errors onto the repo error taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return repo_errors.ErrNotFound
	case isUniqueViolation(err):
		return repo_errors.ErrConflict
	case isTransient(err):
		return repo_errors.ErrTransient
	}

	return err
}
