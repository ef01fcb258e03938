package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Worker     WorkerConfig
	SMS        SMSConfig
	Prediction PredictionConfig
	DB         DatabaseConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type SMSConfig struct {
	Enabled         bool
	Region          string // AWS region for the SNS client
	DefaultCountry  string // prepended to numbers without a country code
	DefaultLanguage string
	SendTimeout     time.Duration
}

type PredictionConfig struct {
	Enabled      bool // background generation of synthetic predictions
	PollInterval time.Duration
	Seed         int64 // 0 means derive from the current time
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		SMS: SMSConfig{
			Enabled:         getEnvBool("SMS_ENABLED", false),
			Region:          getEnv("SMS_SNS_REGION", "ap-south-1"),
			DefaultCountry:  getEnv("SMS_DEFAULT_COUNTRY", "+91"),
			DefaultLanguage: getEnv("SMS_DEFAULT_LANGUAGE", "en"),
			SendTimeout:     getEnvDuration("SMS_SEND_TIMEOUT", 10*time.Second),
		},
		Prediction: PredictionConfig{
			Enabled:      getEnvBool("PREDICTION_ENABLED", false),
			PollInterval: getEnvDuration("PREDICTION_POLL_INTERVAL", 30*time.Minute),
			Seed:         int64(getEnvInt("PREDICTION_SEED", 0)),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/lifeguard.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.SMS.SendTimeout < time.Second {
		return fmt.Errorf("SMS send timeout must be at least 1 second")
	}
	if c.SMS.DefaultCountry == "" || c.SMS.DefaultCountry[0] != '+' {
		return fmt.Errorf("invalid default country code: %q", c.SMS.DefaultCountry)
	}
	if c.Prediction.Enabled && c.Prediction.PollInterval < time.Minute {
		return fmt.Errorf("prediction poll interval must be at least 1 minute")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
