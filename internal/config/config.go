package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where LoadConfig looks when no path is given.
const DefaultConfigPath = ".seqcheck/config.yaml"

// HistoryConfig represents scan-history configuration.
type HistoryConfig struct {
	// Enabled enables recording scan runs to the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`

	// KeepScans is the maximum number of scan records to keep (0 = unlimited)
	KeepScans int `yaml:"keep_scans"`
}

// Config represents seqcheck configuration options.
type Config struct {
	// Recursive enables scanning of subdirectories
	Recursive bool `yaml:"recursive"`

	// MaxDepth limits recursion depth (0 = unlimited)
	MaxDepth int `yaml:"max_depth"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// FullPaths reports directories by absolute path instead of as given
	FullPaths bool `yaml:"full_paths"`

	// FileExcludes extends the platform's default junk-file exclude list
	FileExcludes []string `yaml:"file_excludes"`

	// IncludePattern limits scanning to paths matching this regex
	IncludePattern string `yaml:"include"`

	// ExcludePattern skips paths matching this regex (wins over include)
	ExcludePattern string `yaml:"exclude"`

	// History contains scan-history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Recursive: false,
		MaxDepth:  0,
		LogLevel:  "info",
		FullPaths: false,
		History: HistoryConfig{
			Enabled:   true,
			DBPath:    ".seqcheck/history.db",
			KeepScans: 100,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.Recursive {
		cfg.Recursive = true
	}
	if fileCfg.MaxDepth != 0 {
		cfg.MaxDepth = fileCfg.MaxDepth
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.FullPaths {
		cfg.FullPaths = true
	}
	if len(fileCfg.FileExcludes) > 0 {
		cfg.FileExcludes = fileCfg.FileExcludes
	}
	if fileCfg.IncludePattern != "" {
		cfg.IncludePattern = fileCfg.IncludePattern
	}
	if fileCfg.ExcludePattern != "" {
		cfg.ExcludePattern = fileCfg.ExcludePattern
	}
	// Merge History config - need to check if the section was provided at all
	// We create a temporary unmarshal to detect which history fields exist
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if historySection, exists := rawMap["history"]; exists && historySection != nil {
			historyMap, _ := historySection.(map[string]interface{})

			if _, exists := historyMap["enabled"]; exists {
				cfg.History.Enabled = fileCfg.History.Enabled
			}
			if _, exists := historyMap["db_path"]; exists {
				// Explicitly set db_path, even if empty string
				cfg.History.DBPath = fileCfg.History.DBPath
			}
			if _, exists := historyMap["keep_scans"]; exists {
				cfg.History.KeepScans = fileCfg.History.KeepScans
			}
		}
	}

	return cfg, nil
}
