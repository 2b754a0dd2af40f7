package etl

import (
	"github.com/BartekS5/gamsync/pkg/models"
)

// ValidateHomogeneous checks that every record carries exactly the columns
// of the first record, which is the one the statement is built from.
func ValidateHomogeneous(records []models.Record) error {
	if len(records) == 0 {
		return ErrEmptyDataset
	}

	first := records[0]
	firstCols := first.Columns()
	for i, rec := range records[1:] {
		var missing, extra []string
		for _, col := range firstCols {
			if _, ok := rec[col]; !ok {
				missing = append(missing, col)
			}
		}
		for _, col := range rec.Columns() {
			if _, ok := first[col]; !ok {
				extra = append(extra, col)
			}
		}
		if len(missing) > 0 || len(extra) > 0 {
			return &HeterogeneousRecordError{Row: i + 2, Missing: missing, Extra: extra}
		}
	}
	return nil
}
