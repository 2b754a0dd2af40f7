package etl

import (
	"fmt"
	"slices"
	"sort"

	"github.com/BartekS5/gamsync/pkg/models"
	"github.com/BartekS5/gamsync/pkg/utils"
)

// BuildUpsert generates the MERGE statement for the given columns. Columns
// are sorted, and parameters are numbered in that order; the returned
// statement's Columns field is the order value rows must follow.
func BuildUpsert(d Dialect, table string, columns []string, pk string, rules models.FormatRules) (*models.UpsertStatement, error) {
	if pk == "" {
		return nil, ErrMissingPrimaryKey
	}
	if !slices.Contains(columns, pk) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPrimaryKey, pk)
	}
	if err := utils.CheckTableName(table); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentifier, err)
	}
	for _, col := range columns {
		if !utils.IsIdentifier(col) {
			return nil, fmt.Errorf("%w: column %q", ErrInvalidIdentifier, col)
		}
	}

	sorted := slices.Clone(columns)
	sort.Strings(sorted)

	exprs := make([]string, len(sorted))
	others := make([]string, 0, len(sorted)-1)
	for i, col := range sorted {
		exprs[i] = formatBind(d, d.Placeholder(i+1), col, rules)
		if col != pk {
			others = append(others, col)
		}
	}

	return &models.UpsertStatement{
		SQL:        d.Merge(table, pk, sorted, exprs, others),
		Columns:    sorted,
		PrimaryKey: pk,
	}, nil
}

func formatBind(d Dialect, bind, column string, rules models.FormatRules) string {
	kind, ok := rules[column]
	if !ok {
		return bind
	}
	return d.Format(kind, bind)
}
