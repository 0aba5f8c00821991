package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Kafka        KafkaConfig        `yaml:"kafka"`
	Catalog      CatalogConfig      `yaml:"catalog"`
	Email        EmailConfig        `yaml:"email"`
	Notification NotificationConfig `yaml:"notification"`
	Client       ClientConfig       `yaml:"client"`
}

type HTTPConfig struct {
	Address     string   `yaml:"address"`
	StaticDir   string   `yaml:"static_dir"`
	OpenAPIFile string   `yaml:"openapi_file"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// DealsTTLSeconds bounds how long a ranked deals list is served from cache.
	DealsTTLSeconds int `yaml:"deals_ttl_seconds"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.NotificationsTopic != ""
}

type CatalogConfig struct {
	// RegenerateCron is a standard five-field cron expression. Empty disables periodic
	// regeneration; the catalog is still built once at startup.
	RegenerateCron string `yaml:"regenerate_cron"`
}

type EmailConfig struct {
	Provider        string     `yaml:"provider"`
	From            string     `yaml:"from"`
	ResendAPIKey    string     `yaml:"resend_api_key"`
	FrontendBaseURL string     `yaml:"frontend_base_url"`
	SMTP            SMTPConfig `yaml:"smtp"`
}

const (
	ProviderResend = "resend"
	ProviderSMTP   = "smtp"
	ProviderNone   = "none"
)

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type NotificationConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

type ClientConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load reads .env (if present), the YAML file at path (if present), then applies
// environment overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("PORT"); ok && v != "" {
		c.HTTP.Address = ":" + v
	}
	if v, ok := lookup("DATABASE_URL"); ok && v != "" {
		c.Database.URL = v
		c.Database.Driver = DriverPostgres
	}
	if v, ok := lookup("REDIS_ADDR"); ok && v != "" {
		c.Redis.Addr = v
	}
	if v, ok := lookup("KAFKA_BROKERS"); ok && v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v, ok := lookup("RESEND_API_KEY"); ok && v != "" {
		c.Email.ResendAPIKey = v
		if c.Email.Provider == "" {
			c.Email.Provider = ProviderResend
		}
	}
	if v, ok := lookup("EMAIL_FROM"); ok && v != "" {
		c.Email.From = v
	}
	if v, ok := lookup("FRONTEND_BASE_URL"); ok && v != "" {
		c.Email.FrontendBaseURL = v
	}
	if v, ok := lookup("API_BASE_URL"); ok && v != "" {
		c.Client.BaseURL = v
	}
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":4000"
	}
	if len(c.HTTP.CORSOrigins) == 0 {
		c.HTTP.CORSOrigins = []string{"*"}
	}
	if c.Database.Driver == "" {
		if c.Database.Host != "" {
			c.Database.Driver = DriverPostgres
		} else {
			c.Database.Driver = DriverMemory
		}
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Redis.DealsTTLSeconds <= 0 {
		c.Redis.DealsTTLSeconds = 30
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "lastchanceair-notifications"
	}
	if c.Email.Provider == "" {
		c.Email.Provider = ProviderNone
	}
	if c.Email.From == "" {
		c.Email.From = "onboarding@resend.dev"
	}
	if c.Email.FrontendBaseURL == "" {
		c.Email.FrontendBaseURL = "http://localhost:3000"
	}
	if c.Email.SMTP.Port == 0 {
		c.Email.SMTP.Port = 587
	}
	if c.Notification.Workers <= 0 {
		c.Notification.Workers = 2
	}
	if c.Notification.QueueSize <= 0 {
		c.Notification.QueueSize = 256
	}
	if c.Client.BaseURL == "" {
		c.Client.BaseURL = "http://localhost:4000"
	}
	if c.Client.TimeoutSeconds <= 0 {
		c.Client.TimeoutSeconds = 10
	}
}
