package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
)

// Env is the runtime configuration. Values come from an optional YAML file
// and are then overridden by environment variables.
type Env struct {
	AppAddr     string   `yaml:"app_addr"`
	GinMode     string   `yaml:"gin_mode"`
	DBDriver    string   `yaml:"db_driver"`
	DBDSN       string   `yaml:"db_dsn"`
	JWTSecret   string   `yaml:"jwt_secret"`
	CORSOrigins []string `yaml:"cors_allowed_origins"`
	AutoMigrate bool     `yaml:"auto_migrate"`
}

// LoadEnv reads the YAML file at path (skipped when path is empty) and
// applies APP_ADDR, GIN_MODE, DB_DRIVER, DB_DSN, JWT_SECRET,
// CORS_ALLOWED_ORIGINS and AUTO_MIGRATE on top.
func LoadEnv(path string) (Env, error) {
	env := Env{
		AppAddr:  ":8080",
		DBDriver: DriverMySQL,
		DBDSN:    "root:@tcp(127.0.0.1:3306)/railway?parseTime=true&loc=UTC&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
	}

	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return env, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &env); err != nil {
			return env, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("APP_ADDR")); v != "" {
		env.AppAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("GIN_MODE")); v != "" {
		env.GinMode = v
	}
	if v := strings.TrimSpace(os.Getenv("DB_DRIVER")); v != "" {
		env.DBDriver = v
	}
	if v := strings.TrimSpace(os.Getenv("DB_DSN")); v != "" {
		env.DBDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" {
		env.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		env.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return env, fmt.Errorf("AUTO_MIGRATE: %w", err)
		}
		env.AutoMigrate = b
	}

	return env, env.Validate()
}

func (e Env) Validate() error {
	switch e.DBDriver {
	case DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db_driver %q", e.DBDriver)
	}
	if strings.TrimSpace(e.JWTSecret) == "" {
		return errors.New("jwt_secret is required")
	}
	return nil
}
