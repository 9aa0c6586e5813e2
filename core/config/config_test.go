package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "richtree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
strict: true
sanitizer:
  allow_tags: [iframe, marquee]
  add_attrs: [title]
  forbid_tags: [video]
highlight:
  enabled: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Highlight.Enabled)
	assert.Equal(t, "github", cfg.Highlight.Style, "unset keys keep their defaults")

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lvl)

	sc, rejected := cfg.SanitizerConfig()
	assert.Equal(t, []string{"iframe"}, sc.AddTags)
	assert.Equal(t, []string{"marquee"}, rejected)
	assert.Contains(t, sc.AddAttrs, "title")
	assert.Contains(t, sc.AddAttrs, "style")
	assert.Contains(t, sc.ForbidTags, "video")
	assert.Contains(t, sc.ForbidTags, "script")
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "colour: blue\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Load(writeConfig(t, "log_level: loud\n"))
	assert.ErrorContains(t, err, "log_level")
}
