package platform

import (
	"fmt"
	"os"
)

// EnableAutostart registers the application to start at login.
func EnableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("enable autostart: app name is empty")
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("enable autostart: resolve executable: %w", err)
	}
	return enableAutostart(appName, execPath)
}

// DisableAutostart removes the login registration.
func DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}
	return disableAutostart(appName)
}

func userConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return fallbackConfigDir(homeDir), nil
}
