// Package config handles loading and parsing of configuration files
// for the application, such as the googleSync.yaml file.
package config

import (
	"path/filepath"

	"github.com/BartekS5/gamsync/pkg/models"
)

const (
	DefaultReportFile = "Last_GAM_Pull.csv"
	DefaultTable      = "google_accounts"
)

// Config holds everything a sync run needs. It is built once at startup
// and passed by value into each component; nothing mutates it afterwards.
type Config struct {
	Sync models.SyncConfig

	// ReportPath is the absolute location of the report artifact.
	ReportPath string

	// Optional sinks, populated from the environment.
	MongoConnString string
	PushgatewayURL  string
}

// LoadConfig reads the YAML file at path, applies environment overrides
// (which should be populated by the .env file in main.go) and validates
// the result.
func LoadConfig(path string) (*Config, error) {
	sc, err := LoadSyncConfig(path)
	if err != nil {
		return nil, err
	}

	env := readEnv()
	env.apply(sc)

	if err := Validate(sc); err != nil {
		return nil, err
	}

	reportFile := sc.Tool.ReportFile
	if !filepath.IsAbs(reportFile) {
		dir, err := filepath.Abs(filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		reportFile = filepath.Join(dir, reportFile)
	}

	return &Config{
		Sync:            *sc,
		ReportPath:      reportFile,
		MongoConnString: env.MongoConnString,
		PushgatewayURL:  env.PushgatewayURL,
	}, nil
}
