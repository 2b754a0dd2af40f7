package etl

import (
	"github.com/BartekS5/gamsync/pkg/models"
)

// BuildValueRow projects rec onto columns by name.
func BuildValueRow(rec models.Record, columns []string) (models.ValueRow, error) {
	row := make(models.ValueRow, len(columns))
	for i, col := range columns {
		v, ok := rec[col]
		if !ok {
			return nil, &MissingFieldError{Column: col}
		}
		row[i] = v
	}
	return row, nil
}

// BuildValueRows projects every record; a MissingFieldError carries the
// 1-based row number of the offending record.
func BuildValueRows(records []models.Record, columns []string) ([]models.ValueRow, error) {
	rows := make([]models.ValueRow, 0, len(records))
	for i, rec := range records {
		row, err := BuildValueRow(rec, columns)
		if err != nil {
			if mf, ok := err.(*MissingFieldError); ok {
				mf.Row = i + 1
			}
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
