// Package config assembles the runtime configuration: the two pipeline base
// URLs from the process environment, plus optional user preferences from
// .onlyfoods/config.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppDir is the per-user directory holding preferences and logs.
	AppDir = ".onlyfoods"

	// EnvPipeline1 and EnvPipeline2 name the required base-URL variables.
	EnvPipeline1 = "ONLYFOODS_PIPELINE1_URL"
	EnvPipeline2 = "ONLYFOODS_PIPELINE2_URL"

	// EnvGeoURL optionally overrides the geolocation endpoint.
	EnvGeoURL = "ONLYFOODS_GEO_URL"

	defaultGeoURL     = "http://ip-api.com"
	defaultDialNumber = "+122378343"
)

// Preferences models .onlyfoods/config.yaml.
type Preferences struct {
	DefaultCity string `yaml:"default_city,omitempty"`
	DialNumber  string `yaml:"dial_number,omitempty"`
	LogFile     string `yaml:"log_file,omitempty"`
}

// Config holds everything the app needs at runtime.
type Config struct {
	Pipeline1URL string
	Pipeline2URL string
	GeoURL       string

	// HomeDir is the directory containing AppDir.
	HomeDir string

	Prefs Preferences
}

// New builds the configuration from the environment and the preferences file
// under homeDir. Both pipeline URLs must be set; everything else has defaults.
func New(homeDir string) (*Config, error) {
	pipeline1 := strings.TrimSpace(os.Getenv(EnvPipeline1))
	if pipeline1 == "" {
		return nil, fmt.Errorf("%s environment variable is not set", EnvPipeline1)
	}
	pipeline2 := strings.TrimSpace(os.Getenv(EnvPipeline2))
	if pipeline2 == "" {
		return nil, fmt.Errorf("%s environment variable is not set", EnvPipeline2)
	}
	geoURL := strings.TrimSpace(os.Getenv(EnvGeoURL))
	if geoURL == "" {
		geoURL = defaultGeoURL
	}

	cfg := &Config{
		Pipeline1URL: strings.TrimRight(pipeline1, "/"),
		Pipeline2URL: strings.TrimRight(pipeline2, "/"),
		GeoURL:       geoURL,
		HomeDir:      homeDir,
	}
	if err := cfg.loadPreferences(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AppDirPath returns homeDir/.onlyfoods.
func (c *Config) AppDirPath() string {
	return filepath.Join(c.HomeDir, AppDir)
}

// PreferencesPath returns the on-disk location of the preferences file.
func (c *Config) PreferencesPath() string {
	return filepath.Join(c.AppDirPath(), "config.yaml")
}

// LogPath returns where diagnostics are written.
func (c *Config) LogPath() string {
	if strings.TrimSpace(c.Prefs.LogFile) != "" {
		return c.Prefs.LogFile
	}
	return filepath.Join(c.AppDirPath(), "logs", "onlyfoods.log")
}

// DialNumber returns the phone number the summary screen dials.
func (c *Config) DialNumber() string {
	if strings.TrimSpace(c.Prefs.DialNumber) != "" {
		return c.Prefs.DialNumber
	}
	return defaultDialNumber
}

func (c *Config) loadPreferences() error {
	path := c.PreferencesPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed Preferences
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.DefaultCity = strings.TrimSpace(parsed.DefaultCity)
	parsed.DialNumber = strings.TrimSpace(parsed.DialNumber)
	parsed.LogFile = strings.TrimSpace(parsed.LogFile)
	c.Prefs = parsed
	return nil
}

// SavePreferences writes the current preferences back to disk, creating the
// app directory if needed.
func (c *Config) SavePreferences() error {
	if err := os.MkdirAll(c.AppDirPath(), 0o755); err != nil {
		return fmt.Errorf("config: ensure app dir: %w", err)
	}
	data, err := yaml.Marshal(c.Prefs)
	if err != nil {
		return fmt.Errorf("config: encode preferences: %w", err)
	}
	if err := os.WriteFile(c.PreferencesPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write preferences: %w", err)
	}
	return nil
}
