package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "SALESDESK_CONFIG"
	// ConfigFileName is the config file name looked up in the working directory
	ConfigFileName = "salesdesk.yaml"
	// AppDirName names the per-user and system directories
	AppDirName = "salesdesk"

	dirConfigName   = "config.yaml"
	databaseName    = "salesdesk.db"
	altConfigName   = "salesdesk.yml"
	systemConfigDir = "/etc"
)

// ConfigCandidates lists the locations FindConfigPath checks, most specific
// first: $SALESDESK_CONFIG, ./salesdesk.yaml, ./salesdesk.yml, the user
// config dir and /etc/salesdesk.
func ConfigCandidates() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, ConfigFileName, altConfigName)
	if dir := userDir("XDG_CONFIG_HOME", ".config"); dir != "" {
		paths = append(paths, filepath.Join(dir, AppDirName, dirConfigName))
	}
	return append(paths, filepath.Join(systemConfigDir, AppDirName, dirConfigName))
}

// FindConfigPath returns the first existing candidate, or "" when there is
// none. Working directory hits are made absolute for logging.
func FindConfigPath() string {
	for _, p := range ConfigCandidates() {
		if !fileExists(p) {
			continue
		}
		if !filepath.IsAbs(p) {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
		}
		return p
	}
	return ""
}

// DefaultConfigPath is where -init-config writes when no path is given
func DefaultConfigPath() string {
	if dir := userDir("XDG_CONFIG_HOME", ".config"); dir != "" {
		return filepath.Join(dir, AppDirName, dirConfigName)
	}
	return ConfigFileName
}

// DefaultDatabasePath is the SQLite file of an installed config. It lives in
// the user data dir so the roster survives a change of working directory.
func DefaultDatabasePath() string {
	if dir := userDir("XDG_DATA_HOME", filepath.Join(".local", "share")); dir != "" {
		return filepath.Join(dir, AppDirName, databaseName)
	}
	return defaultDSN
}

// InstallConfig is DefaultConfig pointed at DefaultDatabasePath
func InstallConfig() *Config {
	cfg := DefaultConfig()
	cfg.Database.DSN = DefaultDatabasePath()
	return cfg
}

// EnsureParentDir creates the directory holding path
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

// userDir resolves an XDG base directory, falling back to $HOME/rel
func userDir(xdgEnv, rel string) string {
	if dir := os.Getenv(xdgEnv); dir != "" {
		return dir
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, rel)
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
