package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestDetailsAreUniquePerProject(t *testing.T) {
	b, err := fs.ReadFile(migrationFiles, "migrations/000002_projects.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(b), "project_id      UUID NOT NULL UNIQUE")
}

func TestMigrate_UnknownDirection(t *testing.T) {
	err := Migrate(nil, "sideways", 0)
	require.Error(t, err)
}
