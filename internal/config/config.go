// Package config provides configuration structures and validation for the
// PayFlow importer. It handles environment-based configuration for every
// subsystem: the Silae payroll API, Odoo RPC, the tenant store, the run log,
// the batch trigger, and the admin HTTP server.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the complete application configuration. Each field covers one
// subsystem and is validated during startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Silae       SilaeConfig
	Odoo        OdooConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	Kafka       KafkaConfig
	Admin       AdminConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration for the admin API
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// SilaeConfig contains the Silae payroll API endpoints and timeouts.
// Credentials are not configuration; they come from the secret provider.
type SilaeConfig struct {
	AuthURL      string        // OAuth2 token endpoint
	APIURL       string        // Payroll API base URL
	Scope        string        // Fixed client-credentials scope
	AuthTimeout  time.Duration // Token request timeout
	FetchTimeout time.Duration // Journal fetch timeout
}

// OdooConfig contains Odoo XML-RPC client settings shared by all tenants.
// Per-tenant connection details live in the tenant store.
type OdooConfig struct {
	RPCTimeout time.Duration // Bound on each remote-procedure round trip
}

// PostgresConfig contains PostgreSQL configuration for the tenant store
type PostgresConfig struct {
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Minimum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	MigrationsPath  string        // Path to migration files
}

// MongoDBConfig contains MongoDB configuration for the run log
type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// KafkaConfig contains the batch trigger topic configuration
type KafkaConfig struct {
	Brokers       string
	TriggerTopic  string // Daily scheduler messages arrive here
	ConsumerGroup string
	MinBytes      int
	MaxBytes      int
	MaxWait       time.Duration
}

// AdminConfig contains admin API behavior settings
type AdminConfig struct {
	JournalCacheTTL time.Duration // How long per-tenant Odoo journal listings are cached
	RunHistoryLimit int64         // Default page size for run history
}

// validate checks every configuration value against its minimum requirements
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Validate Silae config
	if c.Silae.AuthURL == "" {
		validationErrors = append(validationErrors, "SILAE_AUTH_URL is required")
	}
	if c.Silae.APIURL == "" {
		validationErrors = append(validationErrors, "SILAE_API_URL is required")
	}
	if c.Silae.Scope == "" {
		validationErrors = append(validationErrors, "SILAE_SCOPE is required")
	}
	if c.Silae.AuthTimeout <= 0 {
		validationErrors = append(validationErrors, "SILAE_AUTH_TIMEOUT must be greater than 0")
	}
	if c.Silae.FetchTimeout <= 0 {
		validationErrors = append(validationErrors, "SILAE_FETCH_TIMEOUT must be greater than 0")
	}

	// Validate Odoo config
	if c.Odoo.RPCTimeout <= 0 {
		validationErrors = append(validationErrors, "ODOO_RPC_TIMEOUT must be greater than 0")
	}

	// Validate PostgreSQL config
	if c.Postgres.URL == "" {
		validationErrors = append(validationErrors, "POSTGRES_URL is required")
	}
	if c.Postgres.MaxConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONNS must be greater than 0")
	}
	if c.Postgres.MinConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MIN_CONNS must be greater than 0")
	}
	if c.Postgres.ConnMaxLifetime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	}
	if c.Postgres.ConnMaxIdleTime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
	}

	// Validate MongoDB config
	if c.MongoDB.URI == "" {
		validationErrors = append(validationErrors, "MONGO_URI is required")
	}
	if c.MongoDB.Database == "" {
		validationErrors = append(validationErrors, "MONGO_DATABASE is required")
	}
	if c.MongoDB.Timeout <= 0 {
		validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
	}
	if c.MongoDB.MaxPoolSize <= 0 {
		validationErrors = append(validationErrors, "MONGO_MAX_POOL_SIZE must be greater than 0")
	}
	if c.MongoDB.MinPoolSize <= 0 {
		validationErrors = append(validationErrors, "MONGO_MIN_POOL_SIZE must be greater than 0")
	}
	if c.MongoDB.MaxConnIdleTime <= 0 {
		validationErrors = append(validationErrors, "MONGO_MAX_CONN_IDLE_TIME must be greater than 0")
	}

	// Validate Kafka config
	if len(c.Kafka.Brokers) == 0 {
		validationErrors = append(validationErrors, "KAFKA_BROKERS is required")
	}
	if c.Kafka.TriggerTopic == "" {
		validationErrors = append(validationErrors, "KAFKA_TRIGGER_TOPIC is required")
	}
	if c.Kafka.ConsumerGroup == "" {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_GROUP is required")
	}
	if c.Kafka.MinBytes <= 0 {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_MIN_BYTES must be greater than 0")
	}
	if c.Kafka.MaxBytes <= 0 {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_BYTES must be greater than 0")
	}
	if c.Kafka.MaxWait <= 0 {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_WAIT must be greater than 0")
	}

	// Validate Admin config
	if c.Admin.JournalCacheTTL <= 0 {
		validationErrors = append(validationErrors, "ADMIN_JOURNAL_CACHE_TTL must be greater than 0")
	}
	if c.Admin.RunHistoryLimit <= 0 {
		validationErrors = append(validationErrors, "ADMIN_RUN_HISTORY_LIMIT must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
