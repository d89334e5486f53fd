package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRequiresPipelineURLs(t *testing.T) {
	t.Setenv(EnvPipeline1, "")
	t.Setenv(EnvPipeline2, "")
	if _, err := New(t.TempDir()); err == nil {
		t.Fatal("expected error when pipeline URLs are unset")
	}

	t.Setenv(EnvPipeline1, "http://p1.test")
	if _, err := New(t.TempDir()); err == nil {
		t.Fatal("expected error when pipeline 2 URL is unset")
	}
}

func TestNewDefaultsAndTrimming(t *testing.T) {
	t.Setenv(EnvPipeline1, "http://p1.test/")
	t.Setenv(EnvPipeline2, "http://p2.test")
	t.Setenv(EnvGeoURL, "")

	cfg, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.Pipeline1URL != "http://p1.test" {
		t.Fatalf("trailing slash must be trimmed, got %q", cfg.Pipeline1URL)
	}
	if cfg.GeoURL != defaultGeoURL {
		t.Fatalf("expected default geo URL, got %q", cfg.GeoURL)
	}
	if cfg.DialNumber() != defaultDialNumber {
		t.Fatalf("expected default dial number, got %q", cfg.DialNumber())
	}
	if !strings.HasSuffix(cfg.LogPath(), filepath.Join(AppDir, "logs", "onlyfoods.log")) {
		t.Fatalf("unexpected default log path %q", cfg.LogPath())
	}
}

func TestPreferencesFromYaml(t *testing.T) {
	home := t.TempDir()
	appDir := filepath.Join(home, AppDir)
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatal(err)
	}
	prefsYAML := "default_city: Austin\ndial_number: \"+15125551234\"\nlog_file: /tmp/custom.log\n"
	if err := os.WriteFile(filepath.Join(appDir, "config.yaml"), []byte(prefsYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvPipeline1, "http://p1.test")
	t.Setenv(EnvPipeline2, "http://p2.test")
	cfg, err := New(home)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.Prefs.DefaultCity != "Austin" {
		t.Fatalf("default city = %q, want Austin", cfg.Prefs.DefaultCity)
	}
	if cfg.DialNumber() != "+15125551234" {
		t.Fatalf("dial number = %q", cfg.DialNumber())
	}
	if cfg.LogPath() != "/tmp/custom.log" {
		t.Fatalf("log path = %q", cfg.LogPath())
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvPipeline1, "http://p1.test")
	t.Setenv(EnvPipeline2, "http://p2.test")

	cfg, err := New(home)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	cfg.Prefs.DefaultCity = "Houston"
	if err := cfg.SavePreferences(); err != nil {
		t.Fatalf("SavePreferences returned error: %v", err)
	}

	reloaded, err := New(home)
	if err != nil {
		t.Fatalf("New after save returned error: %v", err)
	}
	if reloaded.Prefs.DefaultCity != "Houston" {
		t.Fatalf("reloaded default city = %q, want Houston", reloaded.Prefs.DefaultCity)
	}
}

func TestMalformedPreferencesIsAnError(t *testing.T) {
	home := t.TempDir()
	appDir := filepath.Join(home, AppDir)
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(appDir, "config.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvPipeline1, "http://p1.test")
	t.Setenv(EnvPipeline2, "http://p2.test")
	if _, err := New(home); err == nil {
		t.Fatal("expected error for malformed preferences")
	}
}
