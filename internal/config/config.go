package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"insulin_advisor/internal/engine"
)

// EnvPrefix prefixes every environment override, e.g. INSULIN_DB_PATH.
const EnvPrefix = "INSULIN"

type Config struct {
	Port      string          `mapstructure:"port"`
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	Audit     AuditConfig     `mapstructure:"audit"`
	DoseTable DoseTableConfig `mapstructure:"dose_table"`
	Levels    LevelsConfig    `mapstructure:"levels"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console | json
}

type ServerConfig struct {
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuditConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Retention     time.Duration `mapstructure:"retention"`
	PruneInterval time.Duration `mapstructure:"prune_interval"`
}

type DoseTableConfig struct {
	Path string `mapstructure:"path"`
}

type LevelsConfig struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", int64(1<<20))

	v.SetDefault("db.path", "app.db")

	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.retention", 720*time.Hour)
	v.SetDefault("audit.prune_interval", time.Hour)

	v.SetDefault("dose_table.path", "configs/algorithm_config.csv")

	v.SetDefault("levels.min", engine.DefaultBounds.Min)
	v.SetDefault("levels.max", engine.DefaultBounds.Max)

	v.SetDefault("cors.origins", []string{"*"})
}

// Load reads configuration from path, or from configs/config.yml when path is
// empty, then applies INSULIN_* environment overrides. A missing file is only
// an error when path was given explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case path != "" && errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("config file %s: %w", path, err)
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be \"console\" or \"json\", got %q", c.Log.Format)
	}
	if c.Levels.Min < 1 || c.Levels.Max < c.Levels.Min {
		return fmt.Errorf("levels must satisfy 1 <= min <= max, got [%d, %d]", c.Levels.Min, c.Levels.Max)
	}
	if c.Audit.Enabled {
		if c.Audit.Retention <= 0 {
			return fmt.Errorf("audit.retention must be positive when audit is enabled")
		}
		if c.Audit.PruneInterval <= 0 {
			return fmt.Errorf("audit.prune_interval must be positive when audit is enabled")
		}
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	return nil
}

// Bounds is the configured level range.
func (c *Config) Bounds() engine.Bounds {
	return engine.Bounds{Min: c.Levels.Min, Max: c.Levels.Max}
}
