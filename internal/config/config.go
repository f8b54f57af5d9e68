// Package config provides configuration structures and loading for shiftmerge.
package config

// Config represents the complete application configuration.
type Config struct {
	Ingest  IngestConfig  `yaml:"ingest" mapstructure:"ingest"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// IngestConfig selects the input directory and the file extension the
// discovery step matches.
type IngestConfig struct {
	InputDir  string `yaml:"input_dir" mapstructure:"input_dir"`
	Extension string `yaml:"extension" mapstructure:"extension"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			InputDir:  "data/input",
			Extension: ".csv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}
