package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory when none is given
const DefaultFile = "liftplan.yaml"

// Config is the CLI configuration surface
type Config struct {
	DataDir  string        `yaml:"data_dir"`
	Timezone string        `yaml:"timezone"`
	Logging  LoggingConfig `yaml:"logging"`
	Digest   DigestConfig  `yaml:"digest"`
}

// LoggingConfig holds logger options
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DigestConfig holds the alert digest scheduler options
type DigestConfig struct {
	Cron        string `yaml:"cron"`
	HorizonDays int    `yaml:"horizon_days"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DataDir:  "data",
		Timezone: "UTC",
		Logging: LoggingConfig{
			Level: "info",
			JSON:  false,
		},
		Digest: DigestConfig{
			Cron:        "0 7 * * 1-5",
			HorizonDays: 14,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path, an optional .env file
// and LIFTPLAN_* environment variables, in increasing precedence. An empty path reads
// liftplan.yaml when present; an explicit path must exist.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// a missing .env is fine when configuration comes from the environment directly
		_ = godotenv.Load()
	}

	cfg := Default()

	file, explicit := path, path != ""
	if !explicit {
		file = DefaultFile
	}
	if err := cfg.readFile(file); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.DataDir = getenvWithDefault("LIFTPLAN_DATA_DIR", c.DataDir)
	c.Timezone = getenvWithDefault("LIFTPLAN_TIMEZONE", c.Timezone)
	c.Logging.Level = getenvWithDefault("LIFTPLAN_LOG_LEVEL", c.Logging.Level)
	c.Digest.Cron = getenvWithDefault("LIFTPLAN_DIGEST_CRON", c.Digest.Cron)

	if v := os.Getenv("LIFTPLAN_LOG_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LIFTPLAN_LOG_JSON must be a boolean, got %q", v)
		}
		c.Logging.JSON = b
	}
	if v := os.Getenv("LIFTPLAN_DIGEST_HORIZON_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LIFTPLAN_DIGEST_HORIZON_DAYS must be an integer, got %q", v)
		}
		c.Digest.HorizonDays = n
	}
	return nil
}

// Validate ensures that required configuration fields are populated and parseable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir must be provided")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
	}

	if c.Digest.Cron == "" {
		return errors.New("digest.cron must be provided")
	}
	if _, err := cron.ParseStandard(c.Digest.Cron); err != nil {
		return fmt.Errorf("invalid digest.cron %q: %w", c.Digest.Cron, err)
	}

	if c.Digest.HorizonDays < 0 {
		return fmt.Errorf("digest.horizon_days cannot be negative, got %d", c.Digest.HorizonDays)
	}

	return nil
}

// Location returns the reference timezone used to normalize "today"
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
