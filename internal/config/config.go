package config

import (
	"os"
	"time"

	"diamond-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the Diamond server and tools
type Config struct {
	loaded bool

	Addr string `yaml:"addr" envconfig:"addr"`
	Log  struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`

	// GameRetention is how long a finished or abandoned game stays queryable
	GameRetention time.Duration `yaml:"gameRetention" envconfig:"game_retention"`
	// JanitorInterval is how often expired games are swept
	JanitorInterval time.Duration `yaml:"janitorInterval" envconfig:"janitor_interval"`

	Archive struct {
		// Driver is "postgres", "sqlite", or empty to disable archiving
		Driver         string `yaml:"driver" envconfig:"driver"`
		DSN            string `yaml:"dsn" envconfig:"dsn"`
		MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	} `yaml:"archive"`

	Redis struct {
		// Addr is empty to disable the historian
		Addr  string `yaml:"addr" envconfig:"addr"`
		DB    int    `yaml:"db" envconfig:"db"`
		Queue string `yaml:"queue" envconfig:"queue"`
	} `yaml:"redis"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"cors"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	cfg := Config{
		Addr:            ":5000",
		GameRetention:   time.Hour,
		JanitorInterval: time.Minute,
	}

	cfg.Log.Level = "info"
	cfg.Archive.MigrationsPath = "./sql"
	cfg.Redis.Queue = "diamond_events"
	cfg.CORS.AllowedOrigins = []string{"*"}

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The YAML file is optional; environment variables prefixed with DIAMOND_ override it
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("DIAMOND_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	case !os.IsNotExist(err):
		return err
	}

	if err := envconfig.Process("diamond", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
