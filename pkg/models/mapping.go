package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SyncConfig represents the root of the YAML configuration file.
type SyncConfig struct {
	Tool     ToolConfig     `yaml:"gam" validate:"required"`
	Database DatabaseConfig `yaml:"database" validate:"required"`
}

// ToolConfig describes how the report tool is invoked and how its columns
// land in the target table.
type ToolConfig struct {
	Path           string        `yaml:"path" validate:"required"`
	Filters        []string      `yaml:"filters"`
	Mappings       FieldMapping  `yaml:"mappings"`
	DataFormatting FormatRules   `yaml:"data_formatting"`
	PrimaryKey     string        `yaml:"primary_key"`
	ReportFile     string        `yaml:"report_file"`
	Timeout        time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver" validate:"required,oneof=oracle sqlserver"`
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password"`
	Instance string `yaml:"instance" validate:"required"`
	Table    string `yaml:"table" validate:"required"`
}

// ReservedDateColumn is the report's own date column. It can be renamed
// through the mapping but is never requested as a report parameter.
const ReservedDateColumn = "date"

// FieldMapping maps a report column name to a target column name.
type FieldMapping map[string]string

// Target returns the mapped column name, or name itself when unmapped.
func (m FieldMapping) Target(name string) string {
	if target, ok := m[name]; ok {
		return target
	}
	return name
}

// Parameters returns the sorted report parameters to request, which is
// every mapped column except the reserved date column.
func (m FieldMapping) Parameters() []string {
	params := make([]string, 0, len(m))
	for k := range m {
		if k == ReservedDateColumn {
			continue
		}
		params = append(params, k)
	}
	sort.Strings(params)
	return params
}

type FormatKind string

const (
	FormatBool       FormatKind = "bool"
	FormatDateSimple FormatKind = "date_simple"
	FormatDateUTC    FormatKind = "date_utc"
)

// ParseFormatKind accepts the known kinds case-insensitively ("date_UTC"
// is how older configs spell it).
func ParseFormatKind(s string) (FormatKind, error) {
	switch FormatKind(strings.ToLower(strings.TrimSpace(s))) {
	case FormatBool:
		return FormatBool, nil
	case FormatDateSimple:
		return FormatDateSimple, nil
	case FormatDateUTC:
		return FormatDateUTC, nil
	}
	return "", fmt.Errorf("unknown data format %q (want bool, date_simple or date_utc)", s)
}

// FormatRules maps a target column name to its format kind.
type FormatRules map[string]FormatKind

// Normalize returns a copy with every kind canonicalized, or an error
// naming the first column with an unknown kind.
func (r FormatRules) Normalize() (FormatRules, error) {
	out := make(FormatRules, len(r))
	for col, kind := range r {
		k, err := ParseFormatKind(string(kind))
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		out[col] = k
	}
	return out, nil
}
