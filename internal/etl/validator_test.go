package etl

import (
	"errors"
	"testing"

	"github.com/BartekS5/gamsync/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHomogeneous(t *testing.T) {
	ok := []models.Record{
		{"email": "a", "name": "A"},
		{"email": "b", "name": "B"},
	}
	assert.NoError(t, ValidateHomogeneous(ok))

	assert.ErrorIs(t, ValidateHomogeneous(nil), ErrEmptyDataset)
}

func TestValidateHomogeneous_ReportsDifference(t *testing.T) {
	records := []models.Record{
		{"email": "a", "name": "A"},
		{"email": "b", "name": "B"},
		{"email": "c", "phone": "555"},
	}

	err := ValidateHomogeneous(records)
	require.ErrorIs(t, err, ErrHeterogeneousRecord)

	var he *HeterogeneousRecordError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, 3, he.Row)
	assert.Equal(t, []string{"name"}, he.Missing)
	assert.Equal(t, []string{"phone"}, he.Extra)
	assert.Contains(t, err.Error(), "missing name")
}
