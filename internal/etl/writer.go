package etl

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BartekS5/gamsync/pkg/logger"
	"github.com/BartekS5/gamsync/pkg/models"
)

// DBWriter executes the upsert for a whole batch inside one transaction.
// A failing row is recorded and skipped; the transaction is committed
// regardless.
//
// With Autocommit set, each row runs as its own statement outside any
// transaction. That mode is for databases where a failed row would roll
// back the rows already written.
type DBWriter struct {
	DB         *sql.DB
	Autocommit bool
}

func NewDBWriter(db *sql.DB) *DBWriter {
	return &DBWriter{DB: db}
}

// NewDBWriterFor picks the write mode that keeps per-row failures isolated
// on the given dialect.
func NewDBWriterFor(db *sql.DB, d Dialect) *DBWriter {
	return &DBWriter{DB: db, Autocommit: !d.KeepsTxOnRowError()}
}

func (w *DBWriter) Write(ctx context.Context, stmt *models.UpsertStatement, rows []models.ValueRow) (*models.BatchResult, error) {
	if w.Autocommit {
		return w.writeAutocommit(ctx, stmt, rows)
	}

	tx, err := w.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if len(rows) == 0 {
		logger.Info("No rows to upsert")
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit: %w", err)
		}
		return &models.BatchResult{}, nil
	}

	prepared, err := tx.PrepareContext(ctx, stmt.SQL)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer prepared.Close()

	result := execRows(ctx, prepared, rows)

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit: %w", err)
	}
	return result, nil
}

func (w *DBWriter) writeAutocommit(ctx context.Context, stmt *models.UpsertStatement, rows []models.ValueRow) (*models.BatchResult, error) {
	if len(rows) == 0 {
		logger.Info("No rows to upsert")
		return &models.BatchResult{}, nil
	}

	prepared, err := w.DB.PrepareContext(ctx, stmt.SQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer prepared.Close()

	return execRows(ctx, prepared, rows), nil
}

func execRows(ctx context.Context, prepared *sql.Stmt, rows []models.ValueRow) *models.BatchResult {
	result := &models.BatchResult{}

	logger.Info("Starting SQL Execution")
	for i, row := range rows {
		result.Attempted++
		if _, err := prepared.ExecContext(ctx, row...); err != nil {
			rowErr := models.RowError{Offset: i + 1, Err: err}
			result.Errors = append(result.Errors, rowErr)
			logger.Errorf("Error %v at row offset %d", err, rowErr.Offset)
			continue
		}
		result.Succeeded++
	}
	logger.Infof("SQL Execution Finished: %d ok, %d failed", result.Succeeded, result.Failed())
	return result
}
