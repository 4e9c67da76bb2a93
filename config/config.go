package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"

	// SessionTTL is the lifetime of every issued session token. It is not
	// configurable.
	SessionTTL = time.Hour
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Mail     MailConfig
	Avatar   AvatarConfig
	S3       S3Config
}

type AppConfig struct {
	Environment string
	BaseURL     string
	LogLevel    string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type MailConfig struct {
	SendGridAPIKey string
	From           string
}

type AvatarConfig struct {
	Storage string
	Dir     string
	TempDir string
}

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Load builds the configuration from the process environment. It is meant to be
// called once at start-up; the returned value is treated as read-only.
func Load() (*Config, error) {
	port, err := envInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxOpen, err := envInt("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, err
	}
	maxIdle, err := envInt("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return nil, err
	}
	lifetime, err := envDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	serverPort := envString("PORT", envString("SERVER_PORT", "3000"))

	cfg := &Config{
		App: AppConfig{
			Environment: envString("APP_ENV", "development"),
			BaseURL:     strings.TrimRight(envString("BASE_URL", "http://localhost:"+serverPort), "/"),
			LogLevel:    envString("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: serverPort,
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(envString("DB_DRIVER", DriverPostgres)),
			DSN:             os.Getenv("DB_DSN"),
			Host:            envString("DB_HOST", "localhost"),
			Port:            port,
			User:            envString("DB_USER", "postgres"),
			Password:        os.Getenv("DB_PASSWORD"),
			DBName:          envString("DB_NAME", "phonebook"),
			SSLMode:         envString("DB_SSLMODE", "disable"),
			MaxOpenConns:    maxOpen,
			MaxIdleConns:    maxIdle,
			ConnMaxLifetime: lifetime,
		},
		JWT: JWTConfig{
			Secret:     envString("SECRET_KEY", os.Getenv("JWT_SECRET")),
			Expiration: SessionTTL,
		},
		Mail: MailConfig{
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			From:           envString("MAIL_FROM", "no-reply@phonebook.local"),
		},
		Avatar: AvatarConfig{
			Storage: strings.ToLower(envString("AVATAR_STORAGE", StorageLocal)),
			Dir:     envString("AVATAR_DIR", "public/avatars"),
			TempDir: envString("TEMP_DIR", "tmp"),
		},
		S3: S3Config{
			Bucket:        os.Getenv("S3_BUCKET"),
			Region:        envString("S3_REGION", "us-east-1"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			PublicBaseURL: strings.TrimRight(os.Getenv("S3_PUBLIC_URL"), "/"),
		},
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = cfg.Database.defaultDSN()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: SECRET_KEY must be set")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Avatar.Storage {
	case StorageLocal:
	case StorageS3:
		if c.S3.Bucket == "" {
			return errors.New("config: S3_BUCKET must be set when AVATAR_STORAGE=s3")
		}
	default:
		return fmt.Errorf("config: unsupported AVATAR_STORAGE %q", c.Avatar.Storage)
	}
	return nil
}

func (d DatabaseConfig) defaultDSN() string {
	if d.Driver == DriverSQLite {
		return d.DBName + ".db"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration: %w", key, err)
	}
	return d, nil
}
