package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/kondzio13/alis/constants"
	"github.com/pkg/errors"
)

// Config holds the settings the CLI remembers between runs.
type Config struct {
	TickScale uint32 `json:"tickScale,omitempty"`
	TieBreak  string `json:"tieBreak,omitempty"`
	Pairing   string `json:"pairing,omitempty"`
	// LastKey is the most recently resolved key, reused when a solo is
	// decoded without a progression.
	LastKey string `json:"lastKey,omitempty"`
	OutDir  string `json:"outDir,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		TickScale: 1,
		TieBreak:  "reference",
		Pairing:   "scan",
		OutDir:    constants.GetOutDir(),
	}
}

// ConfigPath returns ALIS_CONFIG when set, else ~/.config/alis/config.json.
func ConfigPath() (string, error) {
	if path := constants.GetConfigPath(); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not find home directory")
	}
	return filepath.Join(home, ".config", "alis", "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "could not read config %v", path)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "could not parse config %v", path)
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "could not create config directory")
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "could not write config %v", path)
}
