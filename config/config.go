package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the runtime configuration, read from .env and the environment.
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
	Export   ExportConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Driver   string // postgres | sqlite
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	DSN      string // overrides the fields above; file path for sqlite
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
	GinMode     string
}

type AuthConfig struct {
	JWTSecret string
}

type ExportConfig struct {
	S3Bucket string
	S3Region string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads an optional .env file, then environment variables on top of the
// defaults below.
func Load() (Config, error) {
	// a missing .env is fine outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "rutinas")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_dsn", "")
	v.SetDefault("port", "8000")
	v.SetDefault("cors_origins", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("export_s3_bucket", "")
	v.SetDefault("s3_region", "")
	v.SetDefault("aws_region", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.AutomaticEnv()

	c := Config{
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("db_driver")),
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
			DSN:      v.GetString("db_dsn"),
		},
		Server: ServerConfig{
			Port:        v.GetString("port"),
			CORSOrigins: splitList(v.GetString("cors_origins")),
			GinMode:     v.GetString("gin_mode"),
		},
		Auth: AuthConfig{JWTSecret: v.GetString("jwt_secret")},
		Export: ExportConfig{
			S3Bucket: v.GetString("export_s3_bucket"),
			S3Region: firstNonEmpty(v.GetString("s3_region"), v.GetString("aws_region")),
		},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	return c, nil
}

// PostgresDSN builds the libpq keyword DSN unless DB_DSN is set.
func (d DatabaseConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
