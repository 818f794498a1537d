package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	AI       AIConfig       `yaml:"ai"`
	Laundry  LaundryConfig  `yaml:"laundry"`
	Reminder ReminderConfig `yaml:"reminder"`
	Import   ImportConfig   `yaml:"import"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr              string        `yaml:"addr"                env:"OMARA_ADDR"                env-default:":8080"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"OMARA_READ_HEADER_TIMEOUT" env-default:"10s"`
	ReadTimeout       time.Duration `yaml:"read_timeout"        env:"OMARA_READ_TIMEOUT"        env-default:"30s"`
	WriteTimeout      time.Duration `yaml:"write_timeout"       env:"OMARA_WRITE_TIMEOUT"       env-default:"60s"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"        env:"OMARA_IDLE_TIMEOUT"        env-default:"120s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"OMARA_SHUTDOWN_TIMEOUT"    env-default:"5s"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"OMARA_DB" env-default:"omara.sqlite3"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"OMARA_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"OMARA_LOG_FORMAT" env-default:"text"`
	File   string `yaml:"file"   env:"OMARA_LOG_FILE"`
}

// AIConfig selects and configures the AI service.
type AIConfig struct {
	Provider string        `yaml:"provider" env:"OMARA_AI_PROVIDER" env-default:"auto"`
	APIKey   string        `yaml:"api_key"  env:"OMARA_AI_API_KEY"`
	BaseURL  string        `yaml:"base_url" env:"OMARA_AI_BASE_URL"`
	Model    string        `yaml:"model"    env:"OMARA_AI_MODEL"    env-default:"claude-sonnet-4-5"`
	Timeout  time.Duration `yaml:"timeout"  env:"OMARA_AI_TIMEOUT"  env-default:"30s"`
}

// LaundryConfig holds laundry alert settings.
type LaundryConfig struct {
	OverdueAfter time.Duration `yaml:"overdue_after" env:"OMARA_LAUNDRY_OVERDUE_AFTER" env-default:"120h"`
	ScanInterval time.Duration `yaml:"scan_interval" env:"OMARA_LAUNDRY_SCAN_INTERVAL" env-default:"1h"`
}

// ReminderConfig holds planning reminder settings.
type ReminderConfig struct {
	CheckInterval time.Duration `yaml:"check_interval" env:"OMARA_REMINDER_CHECK_INTERVAL" env-default:"1m"`
}

// ImportConfig holds bulk import settings.
type ImportConfig struct {
	MaxArchiveSize int64 `yaml:"max_archive_size" env:"OMARA_IMPORT_MAX_ARCHIVE_SIZE" env-default:"104857600"`
}
