package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yejue/key-overlay/internal/ui/controls"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	AutoClearMillis  int  `yaml:"auto_clear_millis"`
	DefaultPlayCount int  `yaml:"default_play_count"`
	Autostart        bool `yaml:"autostart"`
	ShowOverlay      bool `yaml:"show_overlay"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (controls.Settings, error) {
	settings := controls.DefaultSettings()
	configPath, err := resolveSettingsPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings controls.Settings) error {
	configPath, err := resolveSettingsPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		AutoClearMillis:  int(settings.AutoClearDelay / time.Millisecond),
		DefaultPlayCount: settings.DefaultPlayCount,
		Autostart:        settings.Autostart,
		ShowOverlay:      settings.ShowOverlay,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func resolveSettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *controls.Settings, fileData yamlSettings) {
	if fileData.AutoClearMillis > 0 {
		settings.AutoClearDelay = time.Duration(fileData.AutoClearMillis) * time.Millisecond
	}
	if fileData.DefaultPlayCount > 0 {
		settings.DefaultPlayCount = fileData.DefaultPlayCount
	}
	settings.Autostart = fileData.Autostart
	settings.ShowOverlay = fileData.ShowOverlay
}
