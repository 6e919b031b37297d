package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTable(t *testing.T) {
	spec, err := ResolveTable("users")
	require.NoError(t, err)
	assert.Equal(t, "users", spec.Table)

	// Lookup is case-insensitive on the logical name.
	_, err = ResolveTable("Users")
	assert.NoError(t, err)

	_, err = ResolveTable("information_schema.tables")
	assert.ErrorIs(t, err, ErrUnknownTable)
	_, err = ResolveTable("")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestBrowsableTablesSorted(t *testing.T) {
	tables := BrowsableTables()
	require.NotEmpty(t, tables)
	for i := 1; i < len(tables); i++ {
		assert.Less(t, tables[i-1].Name, tables[i].Name)
	}
}

func TestCredentialColumnsNeverExposed(t *testing.T) {
	for _, spec := range BrowsableTables() {
		for _, col := range spec.Columns {
			assert.NotContains(t, col, "password", "table %s", spec.Name)
			assert.NotContains(t, col, "hash", "table %s", spec.Name)
			assert.NotContains(t, col, "secret", "table %s", spec.Name)
			assert.NotEqual(t, "google_id", col, "table %s", spec.Name)
		}
	}
}

func TestOrderClause(t *testing.T) {
	spec, err := ResolveTable("products")
	require.NoError(t, err)

	clause, err := spec.OrderClause("price_cents", "desc")
	require.NoError(t, err)
	assert.Equal(t, "`price_cents` DESC", clause)

	// Empty column falls back to the default sort, direction to ASC.
	clause, err = spec.OrderClause("", "")
	require.NoError(t, err)
	assert.Equal(t, "`id` ASC", clause)

	// Unknown direction degrades to ASC rather than erroring.
	clause, err = spec.OrderClause("title", "sideways")
	require.NoError(t, err)
	assert.Equal(t, "`title` ASC", clause)
}

func TestOrderClauseRejectsUnknownColumn(t *testing.T) {
	spec, err := ResolveTable("users")
	require.NoError(t, err)

	_, err = spec.OrderClause("password_hash", "asc")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = spec.OrderClause("id; DROP TABLE users", "asc")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
