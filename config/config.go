package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full application configuration surface.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cloudinary CloudinaryConfig
	Identity   IdentityConfig

	// Environment gates diagnostic detail in responses; "production"
	// hides internals.
	Environment string

	// Timezone is the farm's local reporting convention; every calendar
	// date key is computed in it.
	Timezone string
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the postgres connection string.
type DatabaseConfig struct {
	DSN string
}

// RedisConfig holds the optional cache address.
type RedisConfig struct {
	Addr string
}

// CloudinaryConfig holds the media asset service credentials.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// IdentityConfig points at the external identity provider and lists the
// administrator emails.
type IdentityConfig struct {
	JWKSURL     string
	Issuer      string
	Audience    string
	UserInfoURL string
	AdminEmails []string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			DSN: os.Getenv("DB_CONNECTION_STRING"),
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_URL"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			Folder:    os.Getenv("CLOUDINARY_FOLDER"),
		},
		Identity: IdentityConfig{
			JWKSURL:     os.Getenv("IDENTITY_JWKS_URL"),
			Issuer:      os.Getenv("IDENTITY_ISSUER"),
			Audience:    os.Getenv("IDENTITY_AUDIENCE"),
			UserInfoURL: os.Getenv("IDENTITY_USERINFO_URL"),
			AdminEmails: splitList(os.Getenv("ADMIN_EMAILS")),
		},
		Environment: getenvWithDefault("APP_ENV", "development"),
		Timezone:    getenvWithDefault("TIMEZONE", "Africa/Casablanca"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if c.Database.DSN == "" {
		return errors.New("DB_CONNECTION_STRING must be provided")
	}
	if c.Identity.JWKSURL == "" {
		return errors.New("IDENTITY_JWKS_URL must be provided")
	}
	if len(c.Identity.AdminEmails) == 0 {
		return errors.New("ADMIN_EMAILS must list at least one administrator")
	}

	switch {
	case c.Cloudinary.CloudName == "":
		return errors.New("CLOUDINARY_CLOUD_NAME must be provided")
	case c.Cloudinary.APIKey == "":
		return errors.New("CLOUDINARY_API_KEY must be provided")
	case c.Cloudinary.APISecret == "":
		return errors.New("CLOUDINARY_API_SECRET must be provided")
	}

	if c.Timezone == "" {
		return errors.New("TIMEZONE must not be empty")
	}

	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Production reports whether diagnostics must be withheld from responses.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
