package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appName     = "tracker"
	configYaml  = "config.yaml"
	StorageName = "tracker.db"
	LogName     = "tracker.log"
)

func DefaultConfigPath() string {
	return filepath.Join(configDir(), appName, configYaml)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return home
}

func configDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(homeDir(), ".config")
	}
	return configHome
}

func dataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir(), ".local", "share")
	}
	return filepath.Join(dataHome, appName)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
