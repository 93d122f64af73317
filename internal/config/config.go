// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for daoterm.
type Config struct {
	RPCURL       string `mapstructure:"rpc_url" yaml:"rpc_url"`
	ExplorerURL  string `mapstructure:"explorer_url" yaml:"explorer_url"`
	PriceFeedURL string `mapstructure:"price_feed_url" yaml:"price_feed_url"`
	Keystore     string `mapstructure:"keystore" yaml:"keystore"`
	DefaultDAO   string `mapstructure:"default_dao" yaml:"default_dao"`
	DataDir      string `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	LogFile      string `mapstructure:"log_file" yaml:"log_file"`
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("daoterm")

	// Set defaults (rpc_url has no default - it's required)
	v.SetDefault("explorer_url", "https://explorer.example.net")
	v.SetDefault("price_feed_url", "")
	v.SetDefault("keystore", defaultKeystorePath())
	v.SetDefault("default_dao", "")
	v.SetDefault("data_dir", ".daoterm")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	// Setup ENV binding with DAOTERM_ prefix
	v.SetEnvPrefix("DAOTERM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better parsing
	// Note: BindEnv errors are very rare (only invalid key names), but we check them anyway
	for _, key := range []string{
		"rpc_url", "explorer_url", "price_feed_url", "keystore",
		"default_dao", "data_dir", "log_level", "log_file",
	} {
		envName := "DAOTERM_" + strings.ToUpper(key)
		if err := v.BindEnv(key, envName); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		// Need to set config file explicitly for merge
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/daoterm/daoterm.yml or $XDG_CONFIG_HOME/daoterm/daoterm.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "daoterm", "daoterm.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "daoterm", "daoterm.yml")
}

// ProjectPath returns the project-local config path.
// Returns ./daoterm.yml in the current working directory.
func ProjectPath() string {
	return "daoterm.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	path := ProjectPath()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// defaultKeystorePath returns the default wallet keystore location.
func defaultKeystorePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "daoterm", "keystore.json")
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
