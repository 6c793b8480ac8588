package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const DefaultBackendURL = "http://localhost:3000"

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Backend: BackendConfig{
			URL:       DefaultBackendURL,
			LegacyMCP: false,
		},
		DataDirectory: GetDefaultDataDir(),
	}
}

// LoadUserConfig reads settings.toml, creating it from the template on first run
func LoadUserConfig() (*UserConfig, error) {
	cfg := DefaultUserConfig()
	settingsPath := GetSettingsFilePath()

	if !FileExists(settingsPath) {
		if err := CreateDefaultUserConfig(); err != nil {
			return nil, fmt.Errorf("failed to create config: %w", err)
		}
		return cfg, nil
	}

	_, err := toml.DecodeFile(settingsPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func SaveUserConfig(cfg *UserConfig) error {
	configDir := GetConfigDir()
	if err := EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settingsPath := GetSettingsFilePath()
	// 0600 - contains backend location
	f, err := os.OpenFile(settingsPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

func CreateDefaultUserConfig() error {
	configDir := GetConfigDir()
	if err := EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settingsPath := GetSettingsFilePath()
	if FileExists(settingsPath) {
		return nil
	}

	content := GenerateUserConfigTemplate()
	if err := os.WriteFile(settingsPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func GenerateUserConfigTemplate() string {
	return `# TutorTUI Configuration
# Location: ~/.config/tutortui/settings.toml
# This file uses TOML format: https://toml.io

# Directory where local history (saved chats, drawings) is stored
data_directory = "~/.local/share/tutortui"

[backend]
# Math tutor backend URL
url = "http://localhost:3000"

# Legacy mode: no authenticated chat backend. Messages are classified
# locally and dispatched to the JSON-RPC math tools at <url>/mcp.
legacy_mcp = false
`
}
