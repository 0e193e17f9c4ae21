package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GetConfigPath determines the configuration file path.
// Priority:
// 1. -config command-line flag
// 2. MEM0_CONFIG_PATH environment variable
// 3. config.yaml in the current working directory
// 4. config.yaml in the executable's directory
// A config file is optional; an empty return means defaults plus environment.
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		if _, err := os.Stat(configFilePathFlag); err == nil {
			return configFilePathFlag
		}
	}

	envPath := os.Getenv("MEM0_CONFIG_PATH")
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	locations := []string{}
	if cwd, err := os.Getwd(); err == nil {
		locations = append(locations, cwd)
	}
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		if len(locations) == 0 || locations[0] != exeDir {
			locations = append(locations, exeDir)
		}
	}

	for _, loc := range locations {
		path := filepath.Join(loc, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfig resolves the effective configuration: defaults, then the YAML
// file at configPath (when non-empty), then environment overrides, then
// validation. It must be called once at process start; the result is shared
// read-only afterwards.
func LoadConfig(configPath string) (*Config, error) {
	cfg := NewDefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", configPath, err)
		}
	}

	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
