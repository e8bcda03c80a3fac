package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/domlearn/backend/internal/models"
	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers mapped to domain errors
const (
	errDuplicateEntry   = 1062
	errNoReferencedRow  = 1452
	errNoReferencedRow2 = 1216
)

// Querier is the subset of *sql.DB and *sql.Tx the repositories need
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Transactor runs a unit of work in one database transaction.
// bind builds the repositories the work needs on top of the transaction.
type Transactor[R any] struct {
	db   *sql.DB
	bind func(q Querier) R
}

// NewTransactor creates a new transactor
func NewTransactor[R any](db *sql.DB, bind func(q Querier) R) *Transactor[R] {
	return &Transactor[R]{db: db, bind: bind}
}

// WithinTx commits when fn returns nil and rolls back otherwise.
// Errors returned by fn are passed through unchanged, failures of the transaction itself are TransactionFailure.
func (t *Transactor[R]) WithinTx(ctx context.Context, fn func(repos R) error) error {
	return t.run(ctx, nil, fn)
}

// WithinReadTx runs fn in a read-only transaction so every read sees one snapshot
func (t *Transactor[R]) WithinReadTx(ctx context.Context, fn func(repos R) error) error {
	return t.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (t *Transactor[R]) run(ctx context.Context, opts *sql.TxOptions, fn func(repos R) error) error {
	tx, err := t.db.BeginTx(ctx, opts)
	if err != nil {
		return models.WrapError(models.KindTransactionFailure, err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if err := fn(t.bind(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return models.WrapError(models.KindTransactionFailure, err, "failed to commit transaction")
	}
	return nil
}

// mapWriteError translates constraint violations into domain errors
func mapWriteError(err error, action string) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case errDuplicateEntry:
			return models.WrapError(models.KindDuplicateSlug, err, "slug is already used in this scope")
		case errNoReferencedRow, errNoReferencedRow2:
			return models.WrapError(models.KindNotFound, err, "parent not found")
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func encodeContent(content models.LessonContent) ([]byte, error) {
	content.Normalize()
	data, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode lesson content: %w", err)
	}
	return data, nil
}

// decodeContent treats an empty column as empty content
func decodeContent(raw []byte) (models.LessonContent, error) {
	var content models.LessonContent
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &content); err != nil {
			return content, fmt.Errorf("failed to decode lesson content: %w", err)
		}
	}
	content.Normalize()
	return content, nil
}
