package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Cambio"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"cambio"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"false"`
	}

	Redis struct {
		URL     string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
		Key     string `envconfig:"MIRROR_KEY" default:"projectState"`
		Channel string `envconfig:"MIRROR_CHANNEL" default:"projectState:changes"`
	}

	Sync struct {
		RefreshInterval time.Duration `envconfig:"SYNC_REFRESH_INTERVAL" default:"5m"`
		MirrorDebounce  time.Duration `envconfig:"SYNC_MIRROR_DEBOUNCE" default:"1s"`
		MirrorEnabled   bool          `envconfig:"SYNC_MIRROR_ENABLED" default:"true"`
		// Empty means a random id per process.
		WriterID string `envconfig:"SYNC_WRITER_ID"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
		TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"12h"`
	}

	State struct {
		Dir string `envconfig:"STATE_DIR" default:".cambio"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// LogLevel maps the configured level name to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
