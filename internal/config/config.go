// Package config loads CLI configuration from file and environment and
// initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	DataDir    string         `yaml:"data_dir" mapstructure:"data_dir"`
	ResultsDir string         `yaml:"results_dir" mapstructure:"results_dir"`
	Store      StoreConfig    `yaml:"store" mapstructure:"store"`
	Build      BuildConfig    `yaml:"build" mapstructure:"build"`
	Generate   GenerateConfig `yaml:"generate" mapstructure:"generate"`
	Validate   ValidateConfig `yaml:"validate" mapstructure:"validate"`
	Log        LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the validation-run store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Path        string `yaml:"path" mapstructure:"path"`
}

// BuildConfig configures the travel matrix builder.
type BuildConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// GenerateConfig configures synthetic instance generation.
type GenerateConfig struct {
	Users int     `yaml:"users" mapstructure:"users"`
	PFac  float64 `yaml:"p_fac" mapstructure:"p_fac"`
	Seed  int64   `yaml:"seed" mapstructure:"seed"`
}

// ValidateConfig configures solution validation defaults.
type ValidateConfig struct {
	BudgetFactor   float64 `yaml:"budget_factor" mapstructure:"budget_factor"`
	CapacityFactor float64 `yaml:"capacity_factor" mapstructure:"capacity_factor"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FACLOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_dir", "data")
	v.SetDefault("results_dir", "own_results")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "facloc.db")
	v.SetDefault("build.workers", 0)
	v.SetDefault("generate.users", 1000)
	v.SetDefault("generate.p_fac", 0.1)
	v.SetDefault("generate.seed", 1)
	v.SetDefault("validate.budget_factor", 1.0)
	v.SetDefault("validate.capacity_factor", 1.5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
