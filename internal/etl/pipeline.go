package etl

import (
	"context"
	"time"

	"github.com/BartekS5/gamsync/internal/metrics"
	"github.com/BartekS5/gamsync/pkg/logger"
	"github.com/BartekS5/gamsync/pkg/models"
	"github.com/google/uuid"
)

// Plan is a statement together with the rows bound to it.
type Plan struct {
	Statement *models.UpsertStatement
	Rows      []models.ValueRow
}

// PrepareUpsert turns normalized records into a statement and value rows.
// The statement is built from the first record's columns, so the batch is
// checked for homogeneity first.
func PrepareUpsert(d Dialect, table string, tool models.ToolConfig, records []models.Record) (*Plan, error) {
	if err := ValidateHomogeneous(records); err != nil {
		return nil, err
	}

	stmt, err := BuildUpsert(d, table, records[0].Columns(), tool.PrimaryKey, tool.DataFormatting)
	if err != nil {
		return nil, err
	}

	rows, err := BuildValueRows(records, stmt.Columns)
	if err != nil {
		return nil, err
	}
	return &Plan{Statement: stmt, Rows: rows}, nil
}

type Pipeline struct {
	Extractor Extractor
	Loader    Loader
	Auditor   Auditor
	Metrics   metrics.Recorder
	Dialect   Dialect
	Table     string
	Tool      models.ToolConfig
	DryRun    bool
}

func NewPipeline(ext Extractor, loader Loader, d Dialect, table string, tool models.ToolConfig, dryRun bool) *Pipeline {
	return &Pipeline{
		Extractor: ext,
		Loader:    loader,
		Metrics:   metrics.Nop(),
		Dialect:   d,
		Table:     table,
		Tool:      tool,
		DryRun:    dryRun,
	}
}

// Run performs one complete sync. The returned summary is always non-nil;
// its Err mirrors the returned error. Per-row write failures are not an
// error: they are reported in the summary's Result.
func (p *Pipeline) Run(ctx context.Context) (*models.RunSummary, error) {
	summary := &models.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		DryRun:    p.DryRun,
	}
	logger.Infof("Starting sync %s into %s (%s). DryRun: %v", summary.RunID, p.Table, p.Dialect.Name(), p.DryRun)

	summary.Err = p.run(ctx, summary)
	summary.FinishedAt = time.Now()
	p.report(ctx, summary)

	if summary.Err != nil {
		logger.Errorf("Sync %s failed: %v", summary.RunID, summary.Err)
		return summary, summary.Err
	}
	logger.Infof("Sync %s finished in %s (%s)", summary.RunID, summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond), summary.Status())
	return summary, nil
}

func (p *Pipeline) run(ctx context.Context, summary *models.RunSummary) error {
	// 1. Extract
	path, err := p.Extractor.Extract(ctx)
	if err != nil {
		return err
	}

	// 2. Normalize
	records, err := NormalizeFile(path, p.Tool.Mappings)
	if err != nil {
		return err
	}
	summary.Records = len(records)
	logger.Infof("Read %d records from %s", len(records), path)

	// 3. Statement and rows
	plan, err := PrepareUpsert(p.Dialect, p.Table, p.Tool, records)
	if err != nil {
		return err
	}
	logger.Debugf("Upsert SQL: %s", plan.Statement.SQL)

	// 4. Write (skip if DryRun)
	if p.DryRun {
		logger.Infof("[DRY RUN] Would upsert %d rows with: %s", len(plan.Rows), plan.Statement.SQL)
		return nil
	}

	result, err := p.Loader.Write(ctx, plan.Statement, plan.Rows)
	summary.Result = result
	return err
}

// report hands the summary to the audit and metrics sinks. Their failures
// are logged and never change the outcome of the run.
func (p *Pipeline) report(ctx context.Context, summary *models.RunSummary) {
	if p.Auditor != nil {
		if err := p.Auditor.Record(context.WithoutCancel(ctx), summary); err != nil {
			logger.Warnf("Could not record audit entry: %v", err)
		}
	}
	if p.Metrics != nil {
		p.Metrics.ObserveRun(summary)
		if err := p.Metrics.Flush(); err != nil {
			logger.Warnf("Could not push metrics: %v", err)
		}
	}
}
