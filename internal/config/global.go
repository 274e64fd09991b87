// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
)

// GlobalConfigDir returns the directory holding global repolens
// configuration: $XDG_CONFIG_HOME/repolens when set, otherwise
// ~/.config/repolens. The XDG lookup applies on every platform.
func GlobalConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "repolens")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}

// LoadGlobal loads the global config file. A missing file is not an
// error; it yields a zero-value Config.
func LoadGlobal() (*Config, error) {
	return loadFile(GlobalConfigPath())
}
