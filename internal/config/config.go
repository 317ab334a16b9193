package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported storage backends.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds the process configuration.
type Config struct {
	Port          string
	Env           string
	StaticDir     string
	DBDriver      string
	MongoURI      string
	MongoDatabase string
	DatabaseDSN   string
	RabbitMQURL   string
	JWTSecret     string
	AuthRequired  bool
}

// Production reports whether the built frontend should be served.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("NODE_ENV", "development")
	v.SetDefault("STATIC_DIR", "frontend/dist")
	v.SetDefault("DB_DRIVER", DriverMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "catalog")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("AUTH_REQUIRED", false)
}

// Load reads .env files (if present) and the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("Notice: .env file not loaded: %v. Using system environment variables", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from v and validates it.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:          v.GetString("PORT"),
		Env:           v.GetString("NODE_ENV"),
		StaticDir:     v.GetString("STATIC_DIR"),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		MongoURI:      v.GetString("MONGO_URI"),
		MongoDatabase: v.GetString("MONGO_DATABASE"),
		DatabaseDSN:   v.GetString("DATABASE_DSN"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		AuthRequired:  v.GetBool("AUTH_REQUIRED"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for driver %q", c.DBDriver)
		}
	case DriverPostgres, DriverSQLite:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for driver %q", c.DBDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AuthRequired && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_REQUIRED is set")
	}
	return nil
}
