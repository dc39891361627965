package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/crucita?sslmode=disable", DatabaseURL("postgres://u:p@db:5432/crucita?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/crucita", DatabaseURL("postgresql://u@db/crucita"))
	assert.Equal(t, "pgx5://ya", DatabaseURL("pgx5://ya"))
}

func TestEmbeddedFiles(t *testing.T) {
	up, err := fs.ReadFile(files, "000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "uq_users_single_superuser")
	assert.Contains(t, string(up), "ON DELETE RESTRICT")

	_, err = fs.ReadFile(files, "000001_init.down.sql")
	require.NoError(t, err)
}
