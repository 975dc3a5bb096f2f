package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"
	ENV_PATH    = ".env"

	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
	DatabaseMongo    = "mongo"

	DefaultSessionCookie = "session_token"
	DefaultSessionTTL    = 24 * time.Hour

	// environment overrides
	EnvPort           = "PORT"
	EnvLogLevel       = "BLOG_LOG_LEVEL"
	EnvDatabaseType   = "BLOG_DATABASE_TYPE"
	EnvDatabaseDSN    = "BLOG_DATABASE_DSN"
	EnvPrivateKeyPath = "BLOG_PRIVATE_KEY_PATH"
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName    string        `yaml:"service_name" validate:"required"`
	LogLevel       string        `yaml:"loglevel" validate:"required"`
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port" validate:"required"`
	PrivateKeyPath string        `yaml:"private_key_path" validate:"required"`
	Session        SessionConfig `yaml:"session"`
	Database       Database      `yaml:"database" validate:"required"`
}

// SessionConfig controls the session cookie handed out on login.
type SessionConfig struct {
	CookieName string        `yaml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
	Secure     bool          `yaml:"secure"`
}

type Database struct {
	Type string `yaml:"type" validate:"required,oneof=postgres sqlite mongo"`
	// For MongoDB
	MongoDB MongoDBConfig `yaml:"mongodb_config"`
	// For PostgreSQL
	Postgres PostgresConfig `yaml:"postgres_config"`
	// For SQLite
	SQLite SQLiteConfig `yaml:"sqlite_config"`
}

// MongoDBConfig holds the MongoDB connection settings.
type MongoDBConfig struct {
	DSN              string             `yaml:"dsn"`
	Timeout          time.Duration      `yaml:"timeout"`
	Options          MongoServerOptions `yaml:"mongo_server_options"`
	ValidCollections []string           `yaml:"valid_collections"`
}

type PostgresConfig struct {
	DSN     string                `yaml:"dsn"`
	Options PostgresServerOptions `yaml:"postgres_server_options"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

type PostgresServerOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct and fills in session defaults.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	config.applyDefaults()

	return config, nil
}

// ApplyEnvOverrides loads envPath (a missing file is not an error) and lets
// process environment variables override the file based settings.
func ApplyEnvOverrides(cfg *ServiceConfig, envPath string) error {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if v, ok := os.LookupEnv(EnvPort); ok && v != "" {
		cfg.Port = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseType); ok && v != "" {
		cfg.Database.Type = v
	}
	if v, ok := os.LookupEnv(EnvPrivateKeyPath); ok && v != "" {
		cfg.PrivateKeyPath = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok && v != "" {
		switch cfg.Database.Type {
		case DatabasePostgres:
			cfg.Database.Postgres.DSN = v
		case DatabaseMongo:
			cfg.Database.MongoDB.DSN = v
		case DatabaseSQLite:
			cfg.Database.SQLite.Path = v
		}
	}

	return nil
}

// DSN returns the data source name of the configured database backend.
func (d Database) DSN() string {
	switch d.Type {
	case DatabasePostgres:
		return d.Postgres.DSN
	case DatabaseMongo:
		return d.MongoDB.DSN
	case DatabaseSQLite:
		return d.SQLite.Path
	}
	return ""
}

func (c *ServiceConfig) applyDefaults() {
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultSessionCookie
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = DefaultSessionTTL
	}
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}

func ListToMap(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range list {
		result[item] = true
	}
	return result
}
