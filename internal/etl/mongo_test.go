package etl

import (
	"errors"
	"testing"
	"time"

	"github.com/BartekS5/gamsync/pkg/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestRunDocument(t *testing.T) {
	start := time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC)
	s := &models.RunSummary{
		RunID:      "run-1",
		StartedAt:  start,
		FinishedAt: start.Add(time.Minute),
		Records:    3,
		Result: &models.BatchResult{
			Attempted: 3,
			Succeeded: 2,
			Errors:    []models.RowError{{Offset: 2, Err: errors.New("ORA-00001: unique constraint")}},
		},
	}

	doc := runDocument("google_accounts", s)
	assert.Equal(t, "run-1", doc["run_id"])
	assert.Equal(t, "google_accounts", doc["table"])
	assert.Equal(t, "partial", doc["status"])
	assert.Equal(t, 2, doc["succeeded"])
	assert.Equal(t, bson.A{bson.M{"offset": 2, "message": "ORA-00001: unique constraint"}}, doc["row_errors"])
	assert.NotContains(t, doc, "error")
}

func TestRunDocument_Failed(t *testing.T) {
	s := &models.RunSummary{RunID: "run-2", Err: ErrEmptyDataset}

	doc := runDocument("google_accounts", s)
	assert.Equal(t, "failed", doc["status"])
	assert.Equal(t, ErrEmptyDataset.Error(), doc["error"])
	assert.NotContains(t, doc, "row_errors")
}
