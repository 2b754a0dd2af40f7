package etl

import (
	"context"
	"time"

	"github.com/BartekS5/gamsync/pkg/logger"
	"github.com/BartekS5/gamsync/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	auditDatabase   = "gamsync"
	auditCollection = "sync_runs"
)

// MongoAuditor stores one document per run in gamsync.sync_runs.
type MongoAuditor struct {
	Client *mongo.Client
	Table  string
}

func NewMongoAuditor(client *mongo.Client, table string) *MongoAuditor {
	return &MongoAuditor{Client: client, Table: table}
}

func (m *MongoAuditor) Record(ctx context.Context, s *models.RunSummary) error {
	coll := m.Client.Database(auditDatabase).Collection(auditCollection)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := coll.InsertOne(ctx, runDocument(m.Table, s))
	if err != nil {
		return err
	}
	logger.Debugf("Audit record %v written", res.InsertedID)
	return nil
}

// runDocument renders the summary as the stored BSON document.
func runDocument(table string, s *models.RunSummary) bson.M {
	doc := bson.M{
		"run_id":      s.RunID,
		"table":       table,
		"started_at":  s.StartedAt,
		"finished_at": s.FinishedAt,
		"records":     s.Records,
		"dry_run":     s.DryRun,
		"status":      s.Status(),
	}
	if s.Err != nil {
		doc["error"] = s.Err.Error()
	}
	if s.Result != nil {
		rowErrors := make(bson.A, 0, len(s.Result.Errors))
		for _, re := range s.Result.Errors {
			rowErrors = append(rowErrors, bson.M{"offset": re.Offset, "message": re.Err.Error()})
		}
		doc["attempted"] = s.Result.Attempted
		doc["succeeded"] = s.Result.Succeeded
		doc["row_errors"] = rowErrors
	}
	return doc
}
