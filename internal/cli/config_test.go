package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[write]
compression = "lz4"
shuffle = false

[load]
skip_invalid = true
`)
	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "lz4", cfg.Write.Compression)
	assert.False(t, cfg.Write.Shuffle)
	assert.Equal(t, 6, cfg.Write.Level)
	assert.True(t, cfg.Load.SkipInvalid)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "[write]\nratio = 3\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "write.ratio")
	})
	t.Run("bad compression", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "[write]\ncompression = \"zstd\"\n"))
		assert.Error(t, err)
	})
	t.Run("bad level", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "[write]\nlevel = 12\n"))
		assert.Error(t, err)
	})
	t.Run("explicit file missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	assert.NoError(t, os.MkdirAll(filepath.Join(dir, appName), 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, appName, "config.toml"), []byte("[log]\nlevel = \"debug\"\n"), 0o644))
	cfg, err = LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}
