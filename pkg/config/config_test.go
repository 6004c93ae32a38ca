package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.jikan.moe/v4", c.API.BaseURL)
	assert.Equal(t, DefaultTimeout, c.API.Timeout)
	assert.Equal(t, "duckdb", c.Storage.Driver)
	assert.Equal(t, "/data/tracker/tracker.db", c.Storage.Path)
	assert.Equal(t, "/data/tracker/tracker.log", c.LogFile)
	assert.Equal(t, DefaultLinkPrefix, c.Blog.LinkPrefix)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:8080/v4
  timeout: 3s
storage:
  driver: sqlite
  path: /tmp/lists.db
date_format: "%Y-%m-%d"
blog:
  link_prefix: /posts/
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/v4", c.API.BaseURL)
	assert.Equal(t, 3*time.Second, c.API.Timeout)
	assert.Equal(t, "sqlite", c.Storage.Driver)
	assert.Equal(t, "/tmp/lists.db", c.Storage.Path)
	assert.Equal(t, "/posts/", c.Blog.LinkPrefix)
	assert.Equal(t, "2026-10-19", c.FormatDate(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)))
}

func TestLoadExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := writeConfig(t, "storage:\n  path: ~/lists/tracker.db\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "lists", "tracker.db"), c.Storage.Path)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: mysql\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "api: [unterminated\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultDateFormat(t *testing.T) {
	c := Default()
	assert.Equal(t, "03/07/2026", c.FormatDate(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)))
}

func TestDefaultConfigPathHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	assert.Equal(t, "/cfg/tracker/config.yaml", DefaultConfigPath())
}

func TestDump(t *testing.T) {
	cfg, err := Load(writeConfig(t, "storage:\n  driver: sqlite\n"))
	require.NoError(t, err)

	out, err := cfg.Dump()
	require.NoError(t, err)
	assert.Contains(t, out, "driver: sqlite")
	assert.Contains(t, out, "base_url: https://api.jikan.moe/v4")
	assert.Contains(t, out, "link_prefix: /blog-posts/")
	assert.NotContains(t, out, "dateFormatter")
}
