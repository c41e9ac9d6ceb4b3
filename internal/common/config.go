package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joseph-ayodele/certificate-extractor/constants"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Extraction ExtractionConfig
	Ingest     IngestConfig
}

// DatabaseConfig holds database-related configuration. DSN is either a
// postgres:// URL or a SQLite file path.
type DatabaseConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
}

// ExtractionConfig tunes the extraction engine and the review threshold.
type ExtractionConfig struct {
	TranslationsFile string
	DefaultTemplate  string
	MinConfidence    float32
}

// IngestConfig controls the directory watcher and the worker queue.
type IngestConfig struct {
	WatchDir       string
	Debounce       time.Duration
	Workers        int
	QueueSize      int
	ProcessTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", "certextract.db"),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Server: ServerConfig{
			GRPCAddr: getEnv("GRPC_ADDR", ":8080"),
		},
		Extraction: ExtractionConfig{
			TranslationsFile: getEnv("EXTRA_TRANSLATIONS", ""),
			DefaultTemplate:  getEnv("DEFAULT_TEMPLATE", string(constants.TemplateAuto)),
			MinConfidence:    getEnvAsFloat32("MIN_CONFIDENCE", 0.6),
		},
		Ingest: IngestConfig{
			WatchDir:       getEnv("WATCH_DIR", ""),
			Debounce:       getEnvAsDuration("WATCH_DEBOUNCE", 500*time.Millisecond),
			Workers:        getEnvAsInt("QUEUE_WORKERS", 2),
			QueueSize:      getEnvAsInt("QUEUE_SIZE", 64),
			ProcessTimeout: getEnvAsDuration("PROCESS_TIMEOUT", 30*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// DefaultTemplate resolves the configured default template, auto when unknown.
func (c *Config) DefaultTemplate() constants.TemplateType {
	if t, ok := constants.Canonicalize(c.Extraction.DefaultTemplate); ok {
		return t
	}
	return constants.TemplateAuto
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("DB_URL", c.Database.DSN, Required).
		Field("GRPC_ADDR", c.Server.GRPCAddr, Required).
		Field("DEFAULT_TEMPLATE", c.Extraction.DefaultTemplate, Template)
	if c.Extraction.MinConfidence < 0 || c.Extraction.MinConfidence > 1 {
		return ConfigError("MIN_CONFIDENCE must be within [0,1]")
	}
	if c.Ingest.Workers < 1 {
		return ConfigError("QUEUE_WORKERS must be positive")
	}
	if v.HasErrors() {
		return ConfigError(v.ErrorMessage())
	}
	return nil
}
