package etl

import (
	"context"

	"github.com/BartekS5/gamsync/pkg/models"
)

// Extractor produces the report artifact and returns its path.
type Extractor interface {
	Extract(ctx context.Context) (string, error)
}

// Loader writes every row with the given statement in one batch.
type Loader interface {
	Write(ctx context.Context, stmt *models.UpsertStatement, rows []models.ValueRow) (*models.BatchResult, error)
}

// Auditor persists a summary of the run somewhere operators can query it.
type Auditor interface {
	Record(ctx context.Context, summary *models.RunSummary) error
}
