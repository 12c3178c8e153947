package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	DefaultBorder string `toml:"default_border"`
	Copyright     string `toml:"copyright"`
	SetCode       string `toml:"set_code"`
	ImagesDir     string `toml:"images_dir"`
	Jobs          int    `toml:"jobs"`
	FormatVersion string `toml:"format_version"`
}

// Default returns the configuration written on first use
func Default() *Config {
	return &Config{
		DefaultBorder: "black",
		Copyright:     "NOT FOR SALE",
		SetCode:       "PROXY",
		ImagesDir:     GetImageLibraryPath(),
		FormatVersion: "0.3.8",
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetImageLibraryPath returns the directory card art is looked up in by default
func GetImageLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "cardsmith", "images")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "cardsmith", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if it does not exist
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}

	return config, nil
}

func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := Save(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes the config file
func Save(config *Config) error {
	configPath := GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}
	return nil
}

// SetDefaultBorder sets the border used when none is given on the command line
func SetDefaultBorder(border string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.DefaultBorder = border
	return Save(config)
}
