package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BartekS5/gamsync/pkg/models"
	"gopkg.in/yaml.v3"
)

// LoadSyncConfig reads and parses the YAML file at filePath. Defaults are
// filled in for the report file and the target table; nothing is validated.
func LoadSyncConfig(filePath string) (*models.SyncConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
	}

	sc, err := ParseSyncConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	return sc, nil
}

func ParseSyncConfig(data []byte) (*models.SyncConfig, error) {
	var sc models.SyncConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, err
	}

	if sc.Tool.ReportFile == "" {
		sc.Tool.ReportFile = DefaultReportFile
	}
	if sc.Database.Table == "" {
		sc.Database.Table = DefaultTable
	}
	if sc.Database.Driver == "" {
		sc.Database.Driver = "oracle"
	}
	return &sc, nil
}
