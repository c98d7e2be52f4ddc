package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv       = "TCHEPLAY_CONFIG"
	apiPortEnv          = "API_PORT"
	logLevelEnv         = "LOG_LEVEL"
	youtubeAPIKeyEnv    = "YOUTUBE_API_KEY"
	postgresHostEnv     = "POSTGRES_HOST"
	postgresPortEnv     = "POSTGRES_PORT"
	postgresUserEnv     = "POSTGRES_USER"
	postgresPasswordEnv = "POSTGRES_PASSWORD"
	postgresDatabaseEnv = "POSTGRES_DB"
)

// Config holds all settings the service needs at startup.
type Config struct {
	Port     int            `yaml:"port"`
	LogLevel string         `yaml:"logLevel"`
	YouTube  YouTubeConfig  `yaml:"youtube"`
	Postgres PostgresConfig `yaml:"postgres"`
	Ingest   IngestConfig   `yaml:"ingest"`
}

// YouTubeConfig wires the Data API credential.
type YouTubeConfig struct {
	APIKey string `yaml:"apiKey"`
}

// PostgresConfig describes the catalog database connection.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// IngestConfig holds ingestion tuning. DefaultTerms are the search phrases
// used when an ingest request carries no query of its own.
type IngestConfig struct {
	DefaultTerms []string `yaml:"defaultTerms"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Ingest.DefaultTerms) == 0 {
		cfg.Ingest.DefaultTerms = defaultConfig().Ingest.DefaultTerms
	}

	return cfg
}

// SlogLevel resolves the configured level string for the slog handler.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(apiPortEnv); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		} else {
			log.Printf("config: invalid %s %q, keeping %d", apiPortEnv, v, c.Port)
		}
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.LogLevel = v
	}

	if v := os.Getenv(youtubeAPIKeyEnv); v != "" {
		c.YouTube.APIKey = v
	}

	if v := os.Getenv(postgresHostEnv); v != "" {
		c.Postgres.Host = v
	}
	if v := os.Getenv(postgresPortEnv); v != "" {
		c.Postgres.Port = v
	}
	if v := os.Getenv(postgresUserEnv); v != "" {
		c.Postgres.User = v
	}
	if v := os.Getenv(postgresPasswordEnv); v != "" {
		c.Postgres.Password = v
	}
	if v := os.Getenv(postgresDatabaseEnv); v != "" {
		c.Postgres.Database = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Port != 0 {
		base.Port = override.Port
	}
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	if override.YouTube.APIKey != "" {
		base.YouTube.APIKey = override.YouTube.APIKey
	}

	if override.Postgres.Host != "" {
		base.Postgres.Host = override.Postgres.Host
	}
	if override.Postgres.Port != "" {
		base.Postgres.Port = override.Postgres.Port
	}
	if override.Postgres.User != "" {
		base.Postgres.User = override.Postgres.User
	}
	if override.Postgres.Password != "" {
		base.Postgres.Password = override.Postgres.Password
	}
	if override.Postgres.Database != "" {
		base.Postgres.Database = override.Postgres.Database
	}

	if len(override.Ingest.DefaultTerms) > 0 {
		base.Ingest.DefaultTerms = override.Ingest.DefaultTerms
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Port:     8080,
		LogLevel: "info",
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "tcheplay",
			Password: "tcheplay",
			Database: "tcheplay",
		},
		Ingest: IngestConfig{
			DefaultTerms: []string{
				"filme completo dublado",
				"filme dublado pt-br",
				"filme dublado português",
			},
		},
	}
}
