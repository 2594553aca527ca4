package config

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level  string
	Format string
	File   string
}

// LoadLoggerConfig loads logging configuration from environment variables
func LoadLoggerConfig(getenv func(string) string) LoggerConfig {
	config := LoggerConfig{
		Level:  getenv("LOG_LEVEL"),
		Format: getenv("LOG_FORMAT"),
		File:   getenv("LOG_FILE"),
	}

	if config.Level == "" {
		config.Level = "info"
	}
	if config.Format == "" {
		config.Format = "console"
	}

	return config
}
