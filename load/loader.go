package load

import (
	"database/sql"
	"fmt"
	"time"
)

// insertRows prepares one insert statement inside the transaction and
// executes it for every row. The first failing row aborts the batch; the
// caller's deferred rollback restores the pre-batch state.
func insertRows[T any](tx *sql.Tx, query string, rows []T, args func(T) []any) error {
	if len(rows) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(args(row)...); err != nil {
			return fmt.Errorf("inserting row %+v: %w", row, err)
		}
	}
	return nil
}

// nullDate maps the zero time to SQL NULL.
func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// nullPercentage maps a missing percentage to SQL NULL.
func nullPercentage(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
