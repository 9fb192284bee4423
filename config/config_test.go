package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_DSN", ":memory:")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("PUBLIC_BASE_URL", "https://menu.example.com/")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "https://menu.example.com", cfg.PublicBaseURL)
	assert.Equal(t, 50, cfg.RateLimitBurst)
}

func TestInitDBSqlite(t *testing.T) {
	db, err := InitDB(&Config{DBDriver: "sqlite", DBDSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)

	_, err = InitDB(&Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestLoadCatalogCategories(t *testing.T) {
	dir := t.TempDir()

	cats, err := LoadCatalogCategories(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCategories, cats)

	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: Brownies\n  - name: Ice Cream\n    description: Scoops\n"), 0o644))
	cats, err = LoadCatalogCategories(path)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Ice Cream", cats[1].Name)
	assert.Equal(t, "Scoops", cats[1].Description)

	_, err = ParseCatalogCategories([]byte("categories: []\n"))
	assert.Error(t, err)
}
