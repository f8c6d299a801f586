package config

import "sync"

//nolint:gochecknoglobals // Set once by the root command, read by subcommands.
var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// SetGlobalConfig stores the configuration loaded for this invocation.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the configuration loaded for this invocation, or
// the defaults when none was loaded.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	if globalConfig == nil {
		return New()
	}
	return globalConfig
}

// ResetGlobalConfigForTest clears the stored configuration.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}
