package etl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExtraction          = errors.New("report extraction failed")
	ErrEmptyDataset        = errors.New("no data in report")
	ErrMalformedReport     = errors.New("malformed report")
	ErrMissingPrimaryKey   = errors.New("you must provide a primary key in the config to join correctly")
	ErrInvalidPrimaryKey   = errors.New("primary key is not one of the report columns; map (csv header) -> (DB primary key) in the config")
	ErrInvalidIdentifier   = errors.New("invalid SQL identifier")
	ErrMissingField        = errors.New("record is missing a column")
	ErrHeterogeneousRecord = errors.New("record columns differ from the first record")
)

// MissingFieldError reports a column that the statement binds but the
// record does not carry.
type MissingFieldError struct {
	Row    int
	Column string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("row %d: %v: %s", e.Row, ErrMissingField, e.Column)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// HeterogeneousRecordError describes how a record's columns differ from the
// first record's. Row is 1-based.
type HeterogeneousRecordError struct {
	Row     int
	Missing []string
	Extra   []string
}

func (e *HeterogeneousRecordError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "row %d: %v", e.Row, ErrHeterogeneousRecord)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "; missing %s", strings.Join(e.Missing, ","))
	}
	if len(e.Extra) > 0 {
		fmt.Fprintf(&b, "; unexpected %s", strings.Join(e.Extra, ","))
	}
	return b.String()
}

func (e *HeterogeneousRecordError) Unwrap() error { return ErrHeterogeneousRecord }
