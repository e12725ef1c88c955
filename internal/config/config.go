package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	AI struct {
		Model       string  `yaml:"model"`
		BaseURL     string  `yaml:"baseURL"`
		APIKey      string  `yaml:"-"` // env only, never from file
		MaxTokens   int     `yaml:"maxTokens"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"ai"`

	Auth struct {
		APIKeys []string `yaml:"apiKeys"`
	} `yaml:"auth"`

	Limits struct {
		MaxLogBytes     int `yaml:"maxLogBytes"`
		RateLimitBurst  int `yaml:"rateLimitBurst"`
		RateLimitPerSec int `yaml:"rateLimitPerSec"`
	} `yaml:"limits"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres | "" (history disabled)
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"` // postgres only
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Load reads config.yaml (optional) and applies environment overrides.
// A .env file is honored for local development; production sets real env vars.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only setup is fine
	default:
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = p
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.AI.Model = v
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Limits.MaxLogBytes == 0 {
		c.Limits.MaxLogBytes = 1 << 20 // 1 MiB of raw log text
	}
	if c.Limits.RateLimitBurst == 0 {
		c.Limits.RateLimitBurst = 10
	}
	if c.Limits.RateLimitPerSec == 0 {
		c.Limits.RateLimitPerSec = 2
	}
}

// HistoryEnabled reports whether a database driver is configured.
func (c *Config) HistoryEnabled() bool {
	return c.Database.Driver == "mysql" || c.Database.Driver == "postgres"
}

// ArchiveEnabled reports whether a MinIO endpoint is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.Minio.Endpoint != ""
}

// MySQLDSN builds the DSN for database/sql with the mysql driver
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds the DSN for database/sql with the pq driver
func (c *Config) PostgresDSN() string {
	ssl := c.Database.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		ssl,
	)
}
