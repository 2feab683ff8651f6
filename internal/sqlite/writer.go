package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

// columnSQLTypes maps inferred column types to SQLite column types.
var columnSQLTypes = map[string]string{
	types.ColumnString:  "TEXT",
	types.ColumnBoolean: "BOOLEAN",
	types.ColumnLong:    "INTEGER",
}

// Overwrite commits schema and rows to the named table in "overwrite with
// schema merge" mode: the table is created if missing, columns new to the
// destination are added, existing columns are preserved, and all rows are
// replaced. The whole commit runs in one transaction.
func (s *Store) Overwrite(table string, schema types.Schema, rows []types.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	if err := checkIdent(table); err != nil {
		return err
	}
	for _, col := range schema.Columns {
		if err := checkIdent(col.Name); err != nil {
			return err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning commit: %w", err)
	}
	defer tx.Rollback()

	if err := s.mergeSchema(tx, table, schema); err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}

	if len(rows) > 0 {
		names := schema.Names()
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
		stmt, err := tx.Prepare(fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s)",
			table, strings.Join(names, ", "), placeholders,
		))
		if err != nil {
			return fmt.Errorf("preparing insert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			args := make([]any, len(names))
			for i, name := range names {
				args[i] = row[name]
			}
			if _, err := stmt.Exec(args...); err != nil {
				return fmt.Errorf("inserting row into %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	s.log.Debug().Str("table", table).Int("rows", len(rows)).Msg("table overwritten")
	return nil
}

// mergeSchema creates the table if missing and adds any schema column the
// destination does not have yet. Existing columns are never altered or
// dropped.
func (s *Store) mergeSchema(tx *sql.Tx, table string, schema types.Schema) error {
	var defs []string
	for _, col := range schema.Columns {
		defs = append(defs, col.Name+" "+columnSQLTypes[col.Type])
	}
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))
	if _, err := tx.Exec(create); err != nil {
		return fmt.Errorf("creating %s: %w", table, err)
	}

	existing, err := tableColumns(tx, table)
	if err != nil {
		return err
	}
	for _, col := range schema.Columns {
		if existing[col.Name] {
			continue
		}
		alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, col.Name, columnSQLTypes[col.Type])
		if _, err := tx.Exec(alter); err != nil {
			return fmt.Errorf("adding column %s to %s: %w", col.Name, table, err)
		}
	}
	return nil
}

// tableColumns returns the destination table's current column set.
func tableColumns(tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning column info: %w", err)
		}
		columns[name] = true
	}
	return columns, rows.Err()
}
