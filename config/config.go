// Package config provides configuration management for the OpenConnect
// session manager. It handles loading, saving, and validating application
// settings stored as YAML in the user's config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yllada/ocmgr/common"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
// Command-line flags take precedence over values set here.
type Config struct {
	// OpenconnectPath overrides PATH lookup of the openconnect binary.
	OpenconnectPath string `yaml:"openconnect_path,omitempty"`
	// PIDFile is the PID file path shared with the openconnect daemon.
	PIDFile string `yaml:"pid_file"`
	// Interface is the default TUN interface name.
	Interface string `yaml:"interface"`
	// ShowNotifications enables desktop notifications for connection events.
	ShowNotifications bool `yaml:"show_notifications"`
	// HistoryEnabled records connection events in the local history database.
	HistoryEnabled bool `yaml:"history_enabled"`
	// LogMaxSize is the log file size in bytes that triggers rotation.
	// Zero keeps the built-in default.
	LogMaxSize int64 `yaml:"log_max_size,omitempty"`
	// LogMaxBackups is how many rotated log files to keep. Zero keeps the
	// built-in default.
	LogMaxBackups int `yaml:"log_max_backups,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		PIDFile:           common.DefaultPIDFile,
		Interface:         common.DefaultInterface,
		ShowNotifications: true,
		HistoryEnabled:    true,
	}
}

// Load loads the configuration from the default config file path.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile loads the configuration from the given path, creating the file
// with defaults if it doesn't exist yet.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.SaveTo(path); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // reject unknown fields

	var config Config
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills in zero values with defaults so that a partial
// config file still yields a usable configuration.
func (c *Config) applyDefaults() {
	if c.PIDFile == "" {
		c.PIDFile = common.DefaultPIDFile
	}
	if c.Interface == "" {
		c.Interface = common.DefaultInterface
	}
}

// Save saves the configuration to the default config file path.
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo saves the configuration to the given path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	return nil
}

func getConfigPath() (string, error) {
	configDir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, common.ConfigFileName), nil
}
