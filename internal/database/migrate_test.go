package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefifm/dashboard/internal/database"
)

func TestMigrations_Discovered(t *testing.T) {
	sorted := database.Migrations.Sorted()
	require.Len(t, sorted, 1)

	m := sorted[0]
	assert.Equal(t, "20240301000000", m.Name)
	assert.NotNil(t, m.Up)
	assert.NotNil(t, m.Down)
}
