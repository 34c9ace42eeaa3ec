package config

// Config holds app configuration
type Config struct {
	// OutputFile is where encode/remove write the modified PNG.
	// If empty, the input file is rewritten in place.
	OutputFile string `mapstructure:"output"`

	// DryRun parses and mutates without writing anything back
	DryRun bool `mapstructure:"dry_run"`

	LogLevel     string `mapstructure:"log_level"`
	LogOutputDir string `mapstructure:"log_output_dir"`
}
