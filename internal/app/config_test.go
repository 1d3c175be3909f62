package app

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
	p := filepath.Join(t.TempDir(), "gitcopy.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadFile(t *testing.T) {
	p := writeConfig(t, `
remote_url: https://www.example.com/.git/
local_dir: /srv/site
timeout: 5s
concurrency: 3
classifier: trailing-slash
no_rebuild: true
log_format: json
`)

	cfg, err := LoadFile(p, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "https://www.example.com/.git/", cfg.RemoteURL)
	assert.Equal(t, "/srv/site", cfg.LocalDir)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, "trailing-slash", cfg.Classifier)
	assert.True(t, cfg.NoRebuild)
	assert.Equal(t, "json", cfg.LogFormat)

	// untouched keys keep their defaults
	d := DefaultConfig()
	assert.Equal(t, d.UserAgent, cfg.UserAgent)
	assert.Equal(t, d.Rebuilder, cfg.Rebuilder)
	assert.Equal(t, d.LogLevel, cfg.LogLevel)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), DefaultConfig())
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "remote: https://x/.git/\n"), DefaultConfig())
	assert.Error(t, err, "unknown keys are rejected")

	_, err = LoadFile(writeConfig(t, "concurrency: many\n"), DefaultConfig())
	assert.Error(t, err)
}
