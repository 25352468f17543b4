package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CANTIERE_DB", "")
	t.Setenv("CANTIERE_PROJECT", "")
	t.Setenv("CANTIERE_LOG_OPS", "")
	t.Setenv("CANTIERE_SEARCH_CAP", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.ProjectID)
	assert.False(t, cfg.LogOps)
	assert.Equal(t, 500, cfg.SearchCap)
	assert.True(t, strings.HasSuffix(cfg.DBPath, filepath.Join(".cantiere", "cantiere.db")), "got %q", cfg.DBPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CANTIERE_DB", "/tmp/site.db")
	t.Setenv("CANTIERE_PROJECT", "refinery-2026")
	t.Setenv("CANTIERE_LOG_OPS", "true")
	t.Setenv("CANTIERE_SEARCH_CAP", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/site.db", cfg.DBPath)
	assert.Equal(t, "refinery-2026", cfg.ProjectID)
	assert.True(t, cfg.LogOps)
	assert.Equal(t, 50, cfg.SearchCap)
}

func TestLoad_IgnoresBadValues(t *testing.T) {
	t.Setenv("CANTIERE_DB", "/tmp/site.db")
	t.Setenv("CANTIERE_LOG_OPS", "banana")
	t.Setenv("CANTIERE_SEARCH_CAP", "-3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.LogOps)
	assert.Equal(t, 500, cfg.SearchCap)
}
