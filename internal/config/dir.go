package config

import (
	"os"
	"path/filepath"
)

const (
	ConfigDirEnv = "ENVSAMPLE_CONFIG_DIR"
	ConfigSubdir = "envsample"

	// IdentityFileName is the default age identity file under ConfigDir,
	// consulted when a project declares encrypted sources but no identity.
	IdentityFileName = "identity.txt"
)

func ConfigDir() string {
	if d := os.Getenv(ConfigDirEnv); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return filepath.Join(".", ConfigSubdir)
	}
	return filepath.Join(home, ".config", ConfigSubdir)
}

func DefaultIdentityPath() string {
	return filepath.Join(ConfigDir(), IdentityFileName)
}
