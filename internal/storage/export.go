package storage

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
)

// exportColumns is the column order of exported INSERT statements.
var exportColumns = []string{
	"id", "title", "tags", "categories", "intro", "label", "icon", "background", "sections", "run_id", "updated_at",
}

// Export writes a SQL dump of the cheatsheets table to w. The dump drops and
// recreates the table, so loading it into another database replaces any
// previous content.
func (r *CheatsheetRepo) Export(ctx context.Context, w io.Writer) (int, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM cheatsheets ORDER BY id", strings.Join(exportColumns, ", ")))
	if err != nil {
		return 0, fmt.Errorf("failed to query cheatsheets: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintln(bw, "DROP TABLE IF EXISTS cheatsheets;")
	_, _ = fmt.Fprintln(bw, cheatsheetsTable)

	count := 0
	values := make([]sql.NullString, len(exportColumns))
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return count, fmt.Errorf("failed to scan cheatsheet: %w", err)
		}
		literals := make([]string, len(values))
		for i, v := range values {
			literals[i] = sqlLiteral(v)
		}
		_, _ = fmt.Fprintf(bw, "INSERT INTO cheatsheets (%s) VALUES (%s);\n",
			strings.Join(exportColumns, ", "), strings.Join(literals, ", "))
		count++
	}
	if err := rows.Err(); err != nil {
		return count, fmt.Errorf("row iteration error: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return count, fmt.Errorf("failed to write export: %w", err)
	}
	return count, nil
}

func sqlLiteral(v sql.NullString) string {
	if !v.Valid {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(v.String, "'", "''") + "'"
}
