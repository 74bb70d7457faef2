package postgres

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/yamdb", migrateURL("postgres://u:p@localhost:5432/yamdb"))
	assert.Equal(t, "pgx5://localhost/yamdb", migrateURL("postgresql://localhost/yamdb"))
	assert.Equal(t, "pgx5://localhost/yamdb", migrateURL("pgx5://localhost/yamdb"))
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMigrations_ReferentialActions(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
	require.NoError(t, err)

	tableRx := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS titles \((.*?)\n\);`)
	match := tableRx.FindSubmatch(up)
	require.NotNil(t, match, "titles table not found")
	titles := string(match[1])

	// deleting a category keeps its titles and only clears the link
	assert.Regexp(t, `category_id\s+bigint\s+REFERENCES categories \(id\) ON DELETE SET NULL`, titles)
	assert.NotContains(t, titles, "ON DELETE CASCADE")
}
