package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/nxfile"
)

// Config holds command defaults.
type Config struct {
	Write WriteSection `toml:"write"`
	Load  LoadSection  `toml:"load"`
	Log   LogSection   `toml:"log"`
}

// WriteSection sets how datasets are stored.
type WriteSection struct {
	Compression string `toml:"compression"`
	Level       int    `toml:"level"`
	Shuffle     bool   `toml:"shuffle"`
}

// LoadSection sets how files are loaded.
type LoadSection struct {
	SkipInvalid bool `toml:"skip_invalid"`
}

// LogSection sets the log level.
type LogSection struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the defaults used without a config file.
func DefaultConfig() Config {
	return Config{
		Write: WriteSection{Compression: "deflate", Level: 6, Shuffle: true},
		Log:   LogSection{Level: "info"},
	}
}

// DatasetOptions converts the write section to dataset options.
func (w WriteSection) DatasetOptions() ([]container.DatasetOption, error) {
	return nxfile.Compression(w.Compression, w.Level, w.Shuffle)
}

func defaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName, "config.toml")
}

// LoadConfig reads path over the defaults. An empty path reads the default
// location, where a missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if _, err := cfg.Write.DatasetOptions(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
