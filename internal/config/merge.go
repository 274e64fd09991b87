package config

// Merge layers override on top of base: any field set in override wins and
// zero-value fields fall through to base. Neither input is modified. The
// working-directory config is the override of the global config; CLI flags
// are applied on top of the merged result by the command layer.
func Merge(base, override *Config) *Config {
	merged := *base

	if override.Token != "" {
		merged.Token = override.Token
	}
	if override.Provider != "" {
		merged.Provider = override.Provider
	}
	if override.Model != "" {
		merged.Model = override.Model
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.MaxCommits != 0 {
		merged.MaxCommits = override.MaxCommits
	}
	if override.MaxFiles != 0 {
		merged.MaxFiles = override.MaxFiles
	}
	if override.MaxFileSize != 0 {
		merged.MaxFileSize = override.MaxFileSize
	}
	if override.Addr != "" {
		merged.Addr = override.Addr
	}

	return &merged
}
