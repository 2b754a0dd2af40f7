package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldMapping_Target(t *testing.T) {
	m := FieldMapping{"accounts:is_admin": "is_admin"}
	assert.Equal(t, "is_admin", m.Target("accounts:is_admin"))
	assert.Equal(t, "email", m.Target("email"))

	var empty FieldMapping
	assert.Equal(t, "email", empty.Target("email"))
}

func TestFieldMapping_Parameters(t *testing.T) {
	m := FieldMapping{"name": "n", "date": "report_date", "email": "email"}
	assert.Equal(t, []string{"email", "name"}, m.Parameters())
}

func TestParseFormatKind(t *testing.T) {
	for in, want := range map[string]FormatKind{
		"bool":        FormatBool,
		"date_simple": FormatDateSimple,
		"date_UTC":    FormatDateUTC,
		" date_utc ":  FormatDateUTC,
	} {
		got, err := ParseFormatKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormatKind("timestamp")
	assert.Error(t, err)
}

func TestFormatRules_Normalize(t *testing.T) {
	rules, err := FormatRules{"last_login": "date_UTC"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, FormatDateUTC, rules["last_login"])

	_, err = FormatRules{"x": "nope"}.Normalize()
	assert.ErrorContains(t, err, "column x")
}

func TestRecord_Columns(t *testing.T) {
	r := Record{"name": "A", "id": "1", "active": "TRUE"}
	assert.Equal(t, []string{"active", "id", "name"}, r.Columns())
}

func TestRunSummary_Status(t *testing.T) {
	assert.Equal(t, "success", (&RunSummary{}).Status())
	assert.Equal(t, "success", (&RunSummary{Result: &BatchResult{Attempted: 1, Succeeded: 1}}).Status())
	assert.Equal(t, "partial", (&RunSummary{Result: &BatchResult{Errors: []RowError{{Offset: 1, Err: errors.New("x")}}}}).Status())
	assert.Equal(t, "failed", (&RunSummary{Err: errors.New("x")}).Status())
}

func TestRowError(t *testing.T) {
	cause := errors.New("ORA-00001")
	err := RowError{Offset: 2, Err: cause}
	assert.Equal(t, "row offset 2: ORA-00001", err.Error())
	assert.ErrorIs(t, err, cause)
}
