package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Password PasswordConfig `mapstructure:"password" validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// PasswordConfig drives the password acceptance pipeline.
//
// Validators maps a registered validator identifier to its parameter set;
// an empty map disables validation entirely. HashSchemes is the ordered
// scheme list: the first entry is used for new hashes, the rest remain
// accepted for verification only.
type PasswordConfig struct {
	Validators  map[string]map[string]any `mapstructure:"validators"`
	HashSchemes []string                  `mapstructure:"hash_schemes" validate:"required,min=1,dive,oneof=bcrypt argon2id"`
}

// TaskConfig contains background task runner settings.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0"`
}
