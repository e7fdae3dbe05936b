package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"semtrack/pkg/palette"
)

// Config represents the semtrack.yaml configuration structure
type Config struct {
	Version string `yaml:"version"`
	Project string `yaml:"project"`

	Storage struct {
		Backend string `yaml:"backend"` // file, postgres, memory
		Dir     string `yaml:"dir"`
		URL     string `yaml:"url"`
	} `yaml:"storage"`

	Defaults struct {
		Semester string `yaml:"semester"`
		Color    string `yaml:"color"`
	} `yaml:"defaults"`
}

var configLocations = []string{"semtrack.yaml", "semtrack.yml", ".semtrack.yaml", ".semtrack.yml"}

// LoadConfig reads the configuration file, filling defaults. A missing
// file yields (nil, nil); callers fall back to DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		for _, loc := range configLocations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
		if path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	fillDefaults(&config)
	return &config, nil
}

// DefaultConfig is used when no configuration file exists.
func DefaultConfig() *Config {
	config := &Config{Version: "1"}
	fillDefaults(config)
	return config
}

func fillDefaults(config *Config) {
	if config.Storage.Backend == "" {
		config.Storage.Backend = "file"
	}
	if config.Defaults.Color == "" {
		config.Defaults.Color = palette.DefaultColor
	}
}

// ApplyEnv overlays SEMTRACK_* environment variables, loading a .env
// file first when one is present.
func ApplyEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SEMTRACK_BACKEND"); v != "" {
		config.Storage.Backend = v
	}
	if v := os.Getenv("SEMTRACK_DATA_DIR"); v != "" {
		config.Storage.Dir = v
	}
	if v := os.Getenv("SEMTRACK_DATABASE_URL"); v != "" {
		config.Storage.URL = v
	}
	if v := os.Getenv("SEMTRACK_SEMESTER"); v != "" {
		config.Defaults.Semester = v
	}
}

// SaveConfig writes the configuration as YAML.
func SaveConfig(config *Config, path string) error {
	if path == "" {
		path = "semtrack.yaml"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// storageTarget returns the backend-specific location argument.
func storageTarget(config *Config) string {
	if config.Storage.Backend == "postgres" {
		return config.Storage.URL
	}
	return config.Storage.Dir
}
