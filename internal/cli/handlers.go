package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/BartekS5/gamsync/internal/config"
	"github.com/BartekS5/gamsync/internal/etl"
	"github.com/BartekS5/gamsync/internal/metrics"
	"github.com/BartekS5/gamsync/pkg/database"
	"github.com/BartekS5/gamsync/pkg/logger"
)

func setupLogging(opts *SyncOptions) error {
	level := logger.INFO
	if opts.Debug {
		level = logger.DEBUG
	}
	return logger.InitLogger(opts.LogFile, level)
}

func newExtractor(cfg *config.Config, skip bool) etl.Extractor {
	if skip {
		return etl.ExistingReport(cfg.ReportPath)
	}
	return etl.NewReportExtractor(cfg.Sync.Tool, cfg.ReportPath)
}

func runSync(ctx context.Context, opts *SyncOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := setupLogging(opts); err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := config.LoadConfig(opts.ConfigFile)
	if err != nil {
		return err
	}

	dialect, err := etl.DialectFor(cfg.Sync.Database.Driver)
	if err != nil {
		return err
	}

	pipeline := etl.NewPipeline(
		newExtractor(cfg, opts.SkipExtract),
		nil,
		dialect,
		cfg.Sync.Database.Table,
		cfg.Sync.Tool,
		opts.DryRun,
	)

	if !opts.DryRun {
		sqlDB, err := database.ConnectSQL(ctx, cfg.Sync.Database)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		pipeline.Loader = etl.NewDBWriterFor(sqlDB, dialect)
	}

	if cfg.MongoConnString != "" {
		mongoClient, err := database.ConnectMongo(ctx, cfg.MongoConnString)
		if err != nil {
			logger.Warnf("Audit disabled: %v", err)
		} else {
			defer mongoClient.Disconnect(context.Background())
			pipeline.Auditor = etl.NewMongoAuditor(mongoClient, cfg.Sync.Database.Table)
		}
	}

	rec, err := metrics.New("gamsync", cfg.PushgatewayURL)
	if err != nil {
		return err
	}
	pipeline.Metrics = rec

	_, err = pipeline.Run(ctx)
	return err
}

func runPrintSQL(ctx context.Context, out io.Writer, opts *SyncOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := setupLogging(opts); err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := config.LoadConfig(opts.ConfigFile)
	if err != nil {
		return err
	}

	dialect, err := etl.DialectFor(cfg.Sync.Database.Driver)
	if err != nil {
		return err
	}

	path, err := newExtractor(cfg, opts.SkipExtract).Extract(ctx)
	if err != nil {
		return err
	}
	records, err := etl.NormalizeFile(path, cfg.Sync.Tool.Mappings)
	if err != nil {
		return err
	}
	plan, err := etl.PrepareUpsert(dialect, cfg.Sync.Database.Table, cfg.Sync.Tool, records)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, plan.Statement.SQL)
	for i, col := range plan.Statement.Columns {
		fmt.Fprintf(out, "-- bind %d = %s\n", i+1, col)
	}
	return nil
}
