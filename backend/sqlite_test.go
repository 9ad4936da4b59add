package backend

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdb/askdb/config"
	"github.com/askdb/askdb/schema"
)

func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "company.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE employees (id INTEGER PRIMARY KEY, name TEXT, role TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO employees (id, name, role) VALUES
		(1, 'Priya Sharma', 'Backend Engineer'),
		(2, 'Marcus Webb', 'Engineering Manager')`)
	require.NoError(t, err)
	return path
}

func TestSQLiteAdapterData(t *testing.T) {
	a := newSQLiteAdapter(config.RelationalConfig{Path: newTestDB(t)}, 50)
	out := a.Execute(context.Background(), "SELECT name, role FROM employees ORDER BY id")

	assert.Equal(t, schema.StatusData, out.Status)
	assert.Contains(t, out.Context, "Priya Sharma")
	assert.Contains(t, out.Context, "Marcus Webb")
}

func TestSQLiteAdapterEmpty(t *testing.T) {
	a := newSQLiteAdapter(config.RelationalConfig{Path: newTestDB(t)}, 50)
	out := a.Execute(context.Background(), "SELECT name FROM employees WHERE role = 'Astronaut'")

	assert.Equal(t, schema.StatusEmpty, out.Status)
	assert.Equal(t, schema.EmptyResultMarker, out.Context)
}

func TestSQLiteAdapterBadSQLIsError(t *testing.T) {
	a := newSQLiteAdapter(config.RelationalConfig{Path: newTestDB(t)}, 50)
	out := a.Execute(context.Background(), "SELECT nothing FROM nowhere")

	assert.Equal(t, schema.StatusError, out.Status)
	assert.NotEmpty(t, out.Err)
	assert.Contains(t, out.Context, "An error occurred:")
}

func TestSQLiteAdapterDescribe(t *testing.T) {
	a := newSQLiteAdapter(config.RelationalConfig{Path: newTestDB(t)}, 50)
	desc := a.Describe(context.Background())

	assert.Contains(t, desc, "employees")
	assert.Contains(t, desc, "name TEXT")
	assert.Contains(t, desc, "id INTEGER")
}

func TestRegistryUnconfiguredBackend(t *testing.T) {
	r := NewRegistry(config.BackendsConfig{
		Relational: config.RelationalConfig{Path: newTestDB(t)},
	}, config.LimitsConfig{MaxResultRows: 50})

	out := r.Execute(context.Background(), schema.KindGraph, "MATCH (n) RETURN n")
	assert.Equal(t, schema.StatusError, out.Status)
	assert.Contains(t, out.Err, "no backend configured")

	_, ok := r.Adapter(schema.KindRelational)
	assert.True(t, ok)
	assert.Empty(t, r.Describe(context.Background(), schema.KindDocument))
}
