package etl

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BartekS5/gamsync/pkg/models"
)

const utf8BOM = "\uFEFF"

// Normalize parses a CSV report (header row plus data rows) into records
// whose keys are the header cells renamed through mapping. Values are kept
// verbatim as strings.
func Normalize(r io.Reader, mapping models.FieldMapping) ([]models.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", ErrEmptyDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedReport, err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	columns := make([]string, len(header))
	source := make(map[string]string, len(header))
	for i, h := range header {
		col := mapping.Target(h)
		if prev, ok := source[col]; ok {
			return nil, fmt.Errorf("%w: headers %q and %q both map to column %q", ErrMalformedReport, prev, h, col)
		}
		source[col] = h
		columns[i] = col
	}

	var records []models.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
		}

		rec := make(models.Record, len(columns))
		for i, col := range columns {
			rec[col] = row[i]
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	return records, nil
}

// NormalizeFile opens the report artifact at path and normalizes it.
func NormalizeFile(path string, mapping models.FieldMapping) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report '%s': %w", path, err)
	}
	defer f.Close()

	records, err := Normalize(f, mapping)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
