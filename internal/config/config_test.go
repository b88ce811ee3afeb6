package config

import (
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	if cfg.Dataset.Root != "Training_Data" {
		t.Errorf("unexpected default root: %s", cfg.Dataset.Root)
	}

	if cfg.Normalizer.JPEGQuality != 95 {
		t.Errorf("expected default quality 95, got %d", cfg.Normalizer.JPEGQuality)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty root", func(c *Config) { c.Dataset.Root = "" }},
		{"no labels", func(c *Config) { c.Dataset.Labels = nil }},
		{"quality too low", func(c *Config) { c.Normalizer.JPEGQuality = 0 }},
		{"quality too high", func(c *Config) { c.Normalizer.JPEGQuality = 101 }},
		{"bad input size", func(c *Config) { c.Live.InputSize = 0 }},
		{"no cameras", func(c *Config) { c.Live.CameraIndexes = nil }},
		{"bad max images", func(c *Config) { c.Viewer.MaxImages = 0 }},
		{"bad max height", func(c *Config) { c.Viewer.MaxHeight = 0 }},
		{"bad sample size", func(c *Config) { c.Audit.SampleSize = 0 }},
	}

	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Dataset.Root = "/data/candy"
	cfg.Normalizer.KeepOriginals = true

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if loaded.Dataset.Root != "/data/candy" {
		t.Errorf("root not preserved: %s", loaded.Dataset.Root)
	}
	if !loaded.Normalizer.KeepOriginals {
		t.Error("keep_originals not preserved")
	}
	// Untouched fields keep defaults
	if loaded.Live.InputSize != 128 {
		t.Errorf("unexpected input size: %d", loaded.Live.InputSize)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}
