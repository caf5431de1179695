// Package project holds application configuration and the layout request
// format: a declarative description of one panel and its placements.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds persisted application settings. Environment variables
// with the PANELCUT_ prefix override the stored values.
type AppConfig struct {
	DefaultPanelWidth  float64  `json:"default_panel_width" envconfig:"DEFAULT_PANEL_WIDTH"`
	DefaultPanelHeight float64  `json:"default_panel_height" envconfig:"DEFAULT_PANEL_HEIGHT"`
	LibraryDir         string   `json:"library_dir" envconfig:"LIBRARY_DIR"`
	RecentLayouts      []string `json:"recent_layouts"`
}

// DefaultAppConfig returns the factory settings.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultPanelWidth:  800,
		DefaultPanelHeight: 1900,
		RecentLayouts:      []string{},
	}
}

// DefaultConfigDir returns the default directory for application configuration.
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(configDir, "panelcut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config AppConfig) error {
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

// LoadAppConfig reads an AppConfig from the given path and applies
// PANELCUT_* environment overrides on top. A missing file yields the
// defaults with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	config := DefaultAppConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return AppConfig{}, err
		}
	} else if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}

	if err := envconfig.Process("panelcut", &config); err != nil {
		return AppConfig{}, err
	}
	if config.RecentLayouts == nil {
		config.RecentLayouts = []string{}
	}
	return config, nil
}

// PanelSizeOrDefault returns the given panel size with non-positive
// values replaced by the configured defaults.
func (c AppConfig) PanelSizeOrDefault(w, h float64) (float64, float64) {
	if w <= 0 {
		w = c.DefaultPanelWidth
	}
	if h <= 0 {
		h = c.DefaultPanelHeight
	}
	return w, h
}

// AddRecentLayout records a layout file path, most recent first, capped at 10.
func (c *AppConfig) AddRecentLayout(path string) {
	updated := []string{path}
	for _, p := range c.RecentLayouts {
		if p != path && len(updated) < 10 {
			updated = append(updated, p)
		}
	}
	c.RecentLayouts = updated
}
