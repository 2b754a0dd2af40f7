package etl

import (
	"fmt"
	"strings"

	"github.com/BartekS5/gamsync/pkg/models"
)

// Dialect renders the database-specific parts of the MERGE statement.
type Dialect interface {
	Name() string
	// Placeholder returns the n-th (1-based) positional bind parameter.
	Placeholder(n int) string
	// Format wraps a bind parameter according to a format kind.
	Format(kind models.FormatKind, bind string) string
	// Merge assembles the statement. exprs[i] is the source expression
	// for columns[i]; others is columns without the primary key.
	Merge(table, pk string, columns, exprs, others []string) string
	// KeepsTxOnRowError reports whether a failed statement leaves the
	// surrounding transaction usable for the rows after it.
	KeepsTxOnRowError() bool
}

// DialectFor returns the dialect for a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "oracle":
		return Oracle{}, nil
	case "sqlserver":
		return SQLServer{}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

type Oracle struct{}

func (Oracle) Name() string { return "oracle" }

func (Oracle) KeepsTxOnRowError() bool { return true }

func (Oracle) Placeholder(n int) string { return fmt.Sprintf(":%d", n) }

func (Oracle) Format(kind models.FormatKind, bind string) string {
	switch kind {
	case models.FormatBool:
		return fmt.Sprintf("(CASE lower(%s) WHEN 'true' THEN 'Y' ELSE 'N' END)", bind)
	case models.FormatDateSimple:
		return fmt.Sprintf("to_date(%s, 'YYYY-MM-DD')", bind)
	case models.FormatDateUTC:
		return fmt.Sprintf("cast(to_utc_timestamp_tz(%s) as timestamp with local time zone)", bind)
	}
	return bind
}

func (Oracle) Merge(table, pk string, columns, exprs, others []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MERGE INTO %s a USING (SELECT ", table)
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s %s", exprs[i], col)
	}
	fmt.Fprintf(&b, " FROM dual) b ON (a.%s = b.%s)", pk, pk)
	if len(others) > 0 {
		b.WriteString(" WHEN MATCHED THEN UPDATE SET ")
		b.WriteString(joinEach(others, ",", "a.%[1]s = b.%[1]s"))
	}
	fmt.Fprintf(&b, " WHEN NOT MATCHED THEN INSERT (%s) VALUES (%s)",
		joinEach(columns, ",", "a.%s"), joinEach(columns, ",", "b.%s"))
	return b.String()
}

type SQLServer struct{}

func (SQLServer) Name() string { return "sqlserver" }

// Conversion errors (Msg 241 and friends) abort the batch and roll back
// any open transaction, even with XACT_ABORT OFF.
func (SQLServer) KeepsTxOnRowError() bool { return false }

func (SQLServer) Placeholder(n int) string { return fmt.Sprintf("@p%d", n) }

func (SQLServer) Format(kind models.FormatKind, bind string) string {
	switch kind {
	case models.FormatBool:
		return fmt.Sprintf("(CASE LOWER(%s) WHEN 'true' THEN 'Y' ELSE 'N' END)", bind)
	case models.FormatDateSimple:
		return fmt.Sprintf("CONVERT(date, %s, 23)", bind)
	case models.FormatDateUTC:
		return fmt.Sprintf("TODATETIMEOFFSET(CAST(%s AS datetime2), '+00:00')", bind)
	}
	return bind
}

func (SQLServer) Merge(table, pk string, columns, exprs, others []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MERGE INTO %s AS a USING (SELECT ", table)
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s AS %s", exprs[i], col)
	}
	fmt.Fprintf(&b, ") AS b ON (a.%s = b.%s)", pk, pk)
	if len(others) > 0 {
		b.WriteString(" WHEN MATCHED THEN UPDATE SET ")
		b.WriteString(joinEach(others, ", ", "%[1]s = b.%[1]s"))
	}
	fmt.Fprintf(&b, " WHEN NOT MATCHED THEN INSERT (%s) VALUES (%s);",
		strings.Join(columns, ", "), joinEach(columns, ", ", "b.%s"))
	return b.String()
}

func joinEach(items []string, sep, format string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf(format, it)
	}
	return strings.Join(parts, sep)
}
