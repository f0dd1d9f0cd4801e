package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeCatalog(t, `[
		{"id": 1, "name": "Table tennis", "max_capacity": 10},
		{"id": 2, "name": "Quiz", "max_capacity": 40}
	]`)
	defs, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, uint64(1), defs[0].ID)
	assert.Equal(t, "Quiz", defs[1].Name)
	assert.Equal(t, uint32(40), defs[1].MaxCapacity)
}

func TestLoadCatalogRejectsBadDefinitions(t *testing.T) {
	cases := map[string]string{
		"missing file":      "",
		"not json":          `{{{`,
		"zero id":           `[{"id": 0, "name": "X", "max_capacity": 5}]`,
		"duplicate id":      `[{"id": 1, "name": "X", "max_capacity": 5},{"id": 1, "name": "Y", "max_capacity": 5}]`,
		"empty name":        `[{"id": 1, "name": "", "max_capacity": 5}]`,
		"zero capacity":     `[{"id": 1, "name": "X", "max_capacity": 0}]`,
		"negative capacity": `[{"id": 1, "name": "X", "max_capacity": -3}]`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.json")
			if content != "" {
				path = writeCatalog(t, content)
			}
			_, err := LoadCatalog(path)
			assert.Error(t, err)
		})
	}
}

func TestAdminSet(t *testing.T) {
	cfg := Config{AdminUserIDs: []uint64{1, 5, 5}}
	set := cfg.AdminSet()
	assert.True(t, set[1])
	assert.True(t, set[5])
	assert.False(t, set[2])
}
