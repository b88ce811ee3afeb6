package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Dataset    DatasetConfig    `json:"dataset"`
	Normalizer NormalizerConfig `json:"normalizer"`
	Live       LiveConfig       `json:"live"`
	Viewer     ViewerConfig     `json:"viewer"`
	Audit      AuditConfig      `json:"audit"`
}

// DatasetConfig locates the class-labeled training data
type DatasetConfig struct {
	Root   string   `json:"root"`
	Labels []string `json:"labels"`
}

// NormalizerConfig holds configuration for the HEIC convert/rename passes
type NormalizerConfig struct {
	JPEGQuality   int  `json:"jpeg_quality"`
	KeepOriginals bool `json:"keep_originals"`
}

// LiveConfig holds configuration for the live camera preview
type LiveConfig struct {
	ModelPath     string `json:"model_path"`
	InputSize     int    `json:"input_size"`
	CameraIndexes []int  `json:"camera_indexes"`
	SaveDir       string `json:"save_dir"`
}

// ViewerConfig holds configuration for the dataset sample viewer
type ViewerConfig struct {
	MaxImages int `json:"max_images"`
	MaxHeight int `json:"max_height"`
}

// AuditConfig holds configuration for the Ollama label audit
type AuditConfig struct {
	URL        string `json:"url"`
	Model      string `json:"model"`
	SampleSize int    `json:"sample_size"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Root:   "Training_Data",
			Labels: []string{"Good", "Bad", "Ugly"},
		},
		Normalizer: NormalizerConfig{
			JPEGQuality:   95,
			KeepOriginals: false,
		},
		Live: LiveConfig{
			ModelPath:     "DNN_4_Candy_Model.onnx",
			InputSize:     128,
			CameraIndexes: []int{0, 1},
			SaveDir:       ".",
		},
		Viewer: ViewerConfig{
			MaxImages: 3,
			MaxHeight: 800,
		},
		Audit: AuditConfig{
			URL:        "http://localhost:11434",
			Model:      "llava",
			SampleSize: 5,
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Fields absent from the
// file keep their defaults.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Dataset.Root == "" {
		return fmt.Errorf("dataset.root cannot be empty")
	}

	if len(c.Dataset.Labels) == 0 {
		return fmt.Errorf("dataset.labels cannot be empty")
	}

	if c.Normalizer.JPEGQuality < 1 || c.Normalizer.JPEGQuality > 100 {
		return fmt.Errorf("normalizer.jpeg_quality must be between 1 and 100")
	}

	if c.Live.InputSize < 1 {
		return fmt.Errorf("live.input_size must be positive")
	}

	if len(c.Live.CameraIndexes) == 0 {
		return fmt.Errorf("live.camera_indexes cannot be empty")
	}

	if c.Viewer.MaxImages < 1 {
		return fmt.Errorf("viewer.max_images must be positive")
	}

	if c.Viewer.MaxHeight < 1 {
		return fmt.Errorf("viewer.max_height must be positive")
	}

	if c.Audit.SampleSize < 1 {
		return fmt.Errorf("audit.sample_size must be positive")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "candytool", "config.json")
}
