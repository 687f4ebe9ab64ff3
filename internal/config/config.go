package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type AppEnv string

const (
	ProductionEnv AppEnv = "production"
	StageEnv      AppEnv = "stage"
	DevelopEnv    AppEnv = "develop"
	LocalEnv      AppEnv = "local"
	TestEnv       AppEnv = "test"
)

type (
	Config struct {
		AppEnv      AppEnv   `yaml:"app_env"`
		LogLevel    string   `yaml:"log_level"`
		HTTP        HTTP     `yaml:"http"`
		Database    Database `yaml:"database"`
		Kafka       Kafka    `yaml:"kafka"`
		Queue       Queue    `yaml:"queue"`
		WorkerCount int      `yaml:"worker_count"`
	}

	HTTP struct {
		Port int `yaml:"port"`
	}

	Database struct {
		Postgres Postgres `yaml:"postgres"`
		Redis    Redis    `yaml:"redis"`
	}

	Postgres struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
	}

	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		Database int    `yaml:"database"`
	}

	Kafka struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	}

	// Queue holds the tunables of the single physical queue this
	// deployment serves.
	Queue struct {
		AvgServiceMinutes float64 `yaml:"avg_service_minutes"`
	}
)

// Load reads the yaml config from CONFIG_PATH (default ./config.yaml) and
// applies defaults for anything left unset.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: failed to read %s", path)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "config: failed to parse yaml")
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Level parses the configured log level, falling back to info.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func (c *Config) applyDefaults() {
	if c.AppEnv == "" {
		c.AppEnv = LocalEnv
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.WorkerCount == 0 {
		c.WorkerCount = 4
	}
	if c.Queue.AvgServiceMinutes == 0 {
		c.Queue.AvgServiceMinutes = 5
	}
}

func (c *Config) validate() error {
	if c.Database.Postgres.Host == "" {
		return errors.New("config: database.postgres.host is required")
	}
	if c.Queue.AvgServiceMinutes < 0 {
		return errors.New("config: queue.avg_service_minutes cannot be negative")
	}
	return nil
}
