package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// maxRecent is how many recently edited files are remembered.
const maxRecent = 10

// Config holds application configuration.
type Config struct {
	RecentFiles []string `json:"recent_files"`
}

func configPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vedit", "config.json")
}

// Load reads the config from disk. A missing or unreadable file yields an
// empty config.
func Load() (*Config, error) {
	p := configPath()
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return &Config{}, nil
	}
	return &cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	p := configPath()
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, data, 0600); err != nil {
		return err
	}
	FixOwnership(p)
	return nil
}

// AddRecent moves path to the front of the recent list.
func (c *Config) AddRecent(path string) {
	if path == "" {
		return
	}
	recent := make([]string, 0, len(c.RecentFiles)+1)
	recent = append(recent, path)
	for _, p := range c.RecentFiles {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecent {
		recent = recent[:maxRecent]
	}
	c.RecentFiles = recent
}
