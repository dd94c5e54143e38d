package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/joeblew999/foldingmap/internal/feature"
)

var (
	// ErrNoTable is returned for a table that does not exist.
	ErrNoTable = errors.New("no such table")
	// ErrNoColumn is returned for a column the table does not have.
	ErrNoColumn = errors.New("no such column")
)

// FieldStore reads attribute values out of DuckDB tables so they can drive
// colour ramps the same way object fields do.
type FieldStore struct {
	db *sql.DB
}

// NewFieldStore wraps a connection.
func NewFieldStore(db *sql.DB) *FieldStore {
	return &FieldStore{db: db}
}

// Tables lists the tables in the main schema, sorted.
func (s *FieldStore) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT table_name FROM information_schema.tables WHERE table_schema = 'main' ORDER BY table_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Columns lists a table's columns in declaration order.
func (s *FieldStore) Columns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT column_name FROM information_schema.columns WHERE table_schema = 'main' AND table_name = ? ORDER BY ordinal_position",
		table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%q: %w", table, ErrNoTable)
	}
	return cols, nil
}

// FieldValues returns the distinct values of a column in row order, first
// occurrence kept. NULL reads as the empty string. Values are cast to text
// so numeric columns classify the same as numeric object fields.
func (s *FieldStore) FieldValues(ctx context.Context, table, column string) ([]string, error) {
	cols, err := s.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(cols, column) {
		return nil, fmt.Errorf("%s.%s: %w", table, column, ErrNoColumn)
	}

	q := fmt.Sprintf("SELECT CAST(%s AS VARCHAR) FROM %s", quoteIdent(column), quoteIdent(table))
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d := feature.NewDistinct()
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		d.Add(v.String)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	values := d.Values()
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// ImportCollection writes a collection into a new table: id, class and one
// VARCHAR column per custom field. An existing table is replaced.
func (s *FieldStore) ImportCollection(ctx context.Context, table string, c *feature.Collection) error {
	fields := slices.DeleteFunc(c.FieldNames(), func(n string) bool { return n == "id" || n == "class" })
	cols := append([]string{"id", "class"}, fields...)

	defs := make([]string, len(cols))
	for i, col := range cols {
		defs[i] = quoteIdent(col) + " VARCHAR"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE OR REPLACE TABLE %s (%s)",
		quoteIdent(table), strings.Join(defs, ", "))); err != nil {
		return err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(table), placeholders))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range c.Objects {
		args := make([]any, len(cols))
		args[0], args[1] = o.ID, o.Class
		for i, f := range fields {
			v, ok := o.Fields[f]
			if ok {
				args[i+2] = v
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
