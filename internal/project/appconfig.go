// Package project persists user-facing state: application configuration,
// saved project documents, and full-data backups.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/woodshop-tools/framecad/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.framecad/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".framecad")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	// Ensure RecentProjects is never nil
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// RememberProject records a project path at the front of the recent list,
// deduplicating and keeping at most ten entries.
func RememberProject(config *model.AppConfig, path string) {
	recent := []string{path}
	for _, p := range config.RecentProjects {
		if p != path && len(recent) < 10 {
			recent = append(recent, p)
		}
	}
	config.RecentProjects = recent
}
