package backend

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/askdb/askdb/common/logger"
	"github.com/askdb/askdb/config"
	"github.com/askdb/askdb/schema"
)

// sqliteAdapter runs generated SQL against the company SQLite file. A fresh
// connection is opened per call; the database is a local file and the access
// pattern is one query per cycle.
type sqliteAdapter struct {
	path    string
	maxRows int
}

func newSQLiteAdapter(cfg config.RelationalConfig, maxRows int) *sqliteAdapter {
	return &sqliteAdapter{path: cfg.Path, maxRows: maxRows}
}

func (a *sqliteAdapter) Kind() schema.BackendKind { return schema.KindRelational }

func (a *sqliteAdapter) Execute(ctx context.Context, payload string) schema.Outcome {
	db, err := sql.Open("sqlite", a.path)
	if err != nil {
		return schema.ErrorOutcome(fmt.Sprintf("open sqlite database failed, err: %v", err))
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, payload)
	if err != nil {
		return schema.ErrorOutcome(fmt.Sprintf("sqlite query failed, err: %v", err))
	}
	defer rows.Close()

	records, err := scanRows(rows)
	if err != nil {
		return schema.ErrorOutcome(fmt.Sprintf("read sqlite rows failed, err: %v", err))
	}
	if len(records) == 0 {
		return schema.EmptyOutcome()
	}
	return schema.DataOutcome(formatRecords(records, a.maxRows))
}

// Describe introspects the live schema: table names from sqlite_master, then
// column name and type per table. The generator needs real names, not a
// hardcoded copy that drifts from the file.
func (a *sqliteAdapter) Describe(ctx context.Context) string {
	db, err := sql.Open("sqlite", a.path)
	if err != nil {
		logger.Warnf("backend: sqlite schema introspection failed: %v", err)
		return ""
	}
	defer db.Close()

	tables, err := db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		logger.Warnf("backend: sqlite schema introspection failed: %v", err)
		return ""
	}
	defer tables.Close()

	var names []string
	for tables.Next() {
		var name string
		if err := tables.Scan(&name); err != nil {
			logger.Warnf("backend: sqlite schema introspection failed: %v", err)
			return ""
		}
		names = append(names, name)
	}
	if err := tables.Err(); err != nil {
		logger.Warnf("backend: sqlite schema introspection failed: %v", err)
		return ""
	}

	var b strings.Builder
	for _, name := range names {
		cols, err := a.tableColumns(ctx, db, name)
		if err != nil {
			logger.Warnf("backend: sqlite schema introspection failed for table %s: %v", name, err)
			continue
		}
		fmt.Fprintf(&b, "Table %s (%s)\n", name, strings.Join(cols, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *sqliteAdapter) tableColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid         int
			name, ctype string
			notnull, pk int
			dflt        sql.NullString
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, fmt.Sprintf("%s %s", name, ctype))
	}
	return cols, rows.Err()
}

// scanRows reads every row into a generic record, letting the driver pick the
// Go type per cell.
func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(map[string]any, len(cols))
		for i, col := range cols {
			rec[col] = cells[i]
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
