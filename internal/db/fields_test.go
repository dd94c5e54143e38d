package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/foldingmap/internal/feature"
)

func memStore(t *testing.T) *FieldStore {
	t.Helper()
	conn, err := Open(Config{})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewFieldStore(conn)
}

func TestFieldValues(t *testing.T) {
	ctx := context.Background()
	s := memStore(t)

	_, err := s.db.ExecContext(ctx, `CREATE TABLE towns (name VARCHAR, pop INTEGER, kind VARCHAR)`)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `INSERT INTO towns VALUES
		('a', 100, 'town'), ('b', 5000, 'city'), ('c', 100, 'town'), ('d', NULL, NULL)`)
	require.NoError(t, err)

	tables, err := s.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"towns"}, tables)

	cols, err := s.Columns(ctx, "towns")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "pop", "kind"}, cols)

	pops, err := s.FieldValues(ctx, "towns", "pop")
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "5000", ""}, pops)

	kinds, err := s.FieldValues(ctx, "towns", "kind")
	require.NoError(t, err)
	assert.Equal(t, []string{"town", "city", ""}, kinds)

	_, err = s.FieldValues(ctx, "towns", "nope")
	assert.ErrorIs(t, err, ErrNoColumn)
	_, err = s.FieldValues(ctx, `towns"; DROP TABLE towns; --`, "pop")
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestImportCollection(t *testing.T) {
	ctx := context.Background()
	s := memStore(t)

	c := &feature.Collection{}
	c.Add(
		&feature.Object{ID: "1", Class: "Peak", Fields: map[string]string{"ele": "1200", "name": "Big"}},
		&feature.Object{ID: "2", Class: "Peak", Fields: map[string]string{"ele": "900"}},
	)
	require.NoError(t, s.ImportCollection(ctx, "peaks", c))

	cols, err := s.Columns(ctx, "peaks")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "class", "ele", "name"}, cols)

	names, err := s.FieldValues(ctx, "peaks", "name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Big", ""}, names)

	require.NoError(t, s.ImportCollection(ctx, "peaks", &feature.Collection{}), "replaces")
	ids, err := s.FieldValues(ctx, "peaks", "id")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
