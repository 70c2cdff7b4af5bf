// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package config

import (
	"os"
	"path/filepath"
)

// AppName names the config, data and state directories.
const AppName = "spyglass"

var (
	// AppConfigDir is ~/.config/spyglass
	AppConfigDir string

	// AppDataDir is ~/.local/share/spyglass
	AppDataDir string

	// AppStateDir is ~/.local/state/spyglass
	AppStateDir string

	// AppConfigFile is ~/.config/spyglass/spyglass.yaml
	AppConfigFile string

	// AppOverridesFile is ~/.config/spyglass/overrides.yaml
	AppOverridesFile string

	// AppAliasesFile is ~/.config/spyglass/aliases.yaml
	AppAliasesFile string

	// AppContextsDir is ~/.local/share/spyglass/contexts
	AppContextsDir string

	// AppLogFile is ~/.local/state/spyglass/spyglass.log
	AppLogFile string
)

// InitLocs resolves the application paths, honoring the XDG variables, and
// creates the directories.
func InitLocs() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configHome := xdg("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataHome := xdg("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	stateHome := xdg("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	AppConfigDir = filepath.Join(configHome, AppName)
	AppDataDir = filepath.Join(dataHome, AppName)
	AppStateDir = filepath.Join(stateHome, AppName)

	AppConfigFile = filepath.Join(AppConfigDir, AppName+".yaml")
	AppOverridesFile = filepath.Join(AppConfigDir, "overrides.yaml")
	AppAliasesFile = filepath.Join(AppConfigDir, "aliases.yaml")
	AppContextsDir = filepath.Join(AppDataDir, "contexts")
	AppLogFile = filepath.Join(AppStateDir, AppName+".log")

	for _, dir := range []string{AppConfigDir, AppDataDir, AppStateDir, AppContextsDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}

	return nil
}

func xdg(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}
