package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "nwr"

	// StoreFile is the name of the taxonomy database inside TaxDir.
	StoreFile = "taxonomy.sqlite"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/nwr by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/nwr/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/nwr/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DefaultTaxDir returns the default location of NCBI dumps and
// the taxonomy store: ~/.nwr.
func DefaultTaxDir(homeDir string) string {
	return filepath.Join(homeDir, "."+AppName)
}

// StorePath returns the path of taxonomy.sqlite inside taxDir.
func StorePath(taxDir string) string {
	return filepath.Join(taxDir, StoreFile)
}
