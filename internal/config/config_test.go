package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := Load(path)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, path, resolved)
	assert.Equal(t, "prot", cfg.DefaultProjectName)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_OverlaysFile(t *testing.T) {
	runtimeDir := t.TempDir()
	path := writeConfig(t, `
default_project_name = "Session.protproject"
runtime_dir = "`+filepath.ToSlash(runtimeDir)+`"

[window]
width = 800.0
height = 600.0

[logging]
level = "DEBUG"
development = true
`)

	cfg, _, exists, err := Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "Session", cfg.DefaultProjectName)
	assert.Equal(t, float32(800), cfg.Window.Width)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, filepath.Join(runtimeDir, "proteus.sock"), cfg.SocketPath())
	assert.Equal(t, filepath.Join(runtimeDir, "proteus.lock"), cfg.LockPath())
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", `colour = "red"`, "parse config"},
		{"bad level", "[logging]\nlevel = \"loud\"", "logging.level"},
		{"bad window", "[window]\nwidth = -1.0", "window size"},
		{"relative runtime dir", `runtime_dir = "relative/dir"`, "runtime_dir"},
		{"separator in name", `default_project_name = "a/b"`, "path separators"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, _, err := Load(writeConfig(t, test.body))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), test.want), "error %q should mention %q", err, test.want)
		})
	}
}

func TestSample_RoundTrips(t *testing.T) {
	data, err := Sample()
	require.NoError(t, err)

	path := writeConfig(t, string(data))
	cfg, _, _, err := Load(path)
	require.NoError(t, err)

	want := Default()
	assert.Equal(t, want.DefaultProjectName, cfg.DefaultProjectName)
	assert.Equal(t, want.Window, cfg.Window)
}
