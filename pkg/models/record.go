package models

import (
	"fmt"
	"sort"
	"time"
)

// Record is one report row after its columns were renamed to target
// column names. Values stay strings; typing happens in SQL.
type Record map[string]string

// Columns returns the record's column names in sorted order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// UpsertStatement is a generated MERGE statement. Columns is the order in
// which parameters are bound.
type UpsertStatement struct {
	SQL        string
	Columns    []string
	PrimaryKey string
}

// ValueRow holds one record's values positionally aligned to
// UpsertStatement.Columns.
type ValueRow []any

// RowError is a failure of a single row inside a batch. Offset is the
// 1-based position of the row in the batch.
type RowError struct {
	Offset int
	Err    error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row offset %d: %v", e.Offset, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// BatchResult is the outcome of a batched write.
type BatchResult struct {
	Attempted int
	Succeeded int
	Errors    []RowError
}

func (r *BatchResult) Failed() int { return len(r.Errors) }

// RunSummary describes one complete sync run.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Records    int
	DryRun     bool
	Result     *BatchResult
	Err        error
}

func (s *RunSummary) Status() string {
	switch {
	case s.Err != nil:
		return "failed"
	case s.Result != nil && s.Result.Failed() > 0:
		return "partial"
	default:
		return "success"
	}
}
