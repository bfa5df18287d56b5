// Package config loads service settings from an optional config.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"log_level"`
	HTTP        HTTPConfig     `mapstructure:"http"`
	DB          DBConfig       `mapstructure:"db"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Kafka       KafkaConfig    `mapstructure:"kafka"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Stripe      StripeConfig   `mapstructure:"stripe"`
	Currency    CurrencyConfig `mapstructure:"currency"`
	OpenAI      OpenAIConfig   `mapstructure:"openai"`
	SMTP        SMTPConfig     `mapstructure:"smtp"`
	Upload      UploadConfig   `mapstructure:"upload"`
	Tracing     TracingConfig  `mapstructure:"tracing"`
}

type HTTPConfig struct {
	Port        string `mapstructure:"port"`
	FrontendURL string `mapstructure:"frontend_url"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	GroupID string   `mapstructure:"group_id"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type CurrencyConfig struct {
	RapidAPIKey string `mapstructure:"rapidapi_key"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type SMTPConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	ContactInbox string `mapstructure:"contact_inbox"`
}

type UploadConfig struct {
	Dir           string `mapstructure:"dir"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type TracingConfig struct {
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

// IsDevelopment reports whether console logging and verbose defaults apply
func (c *Config) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development"
}

// env maps config keys to the environment variable names the deployment uses
var env = map[string]string{
	"environment":             "ENVIRONMENT",
	"log_level":               "LOG_LEVEL",
	"http.port":               "HTTP_PORT",
	"http.frontend_url":       "FRONTEND_URL",
	"db.host":                 "DB_HOST",
	"db.port":                 "DB_PORT",
	"db.user":                 "DB_USER",
	"db.password":             "DB_PASSWORD",
	"db.name":                 "DB_NAME",
	"db.sslmode":              "DB_SSLMODE",
	"redis.addr":              "REDIS_ADDR",
	"kafka.brokers":           "KAFKA_BROKERS",
	"auth.jwt_secret":         "JWT_SECRET",
	"stripe.secret_key":       "STRIPE_SECRET_KEY",
	"stripe.webhook_secret":   "STRIPE_WEBHOOK_SECRET",
	"currency.rapidapi_key":   "RAPIDAPI_KEY",
	"openai.api_key":          "OPENAI_API_KEY",
	"smtp.host":               "SMTP_HOST",
	"smtp.port":               "SMTP_PORT",
	"smtp.user":               "EMAIL_USER",
	"smtp.password":           "EMAIL_PASS",
	"smtp.contact_inbox":      "CONTACT_INBOX",
	"upload.dir":              "UPLOAD_DIR",
	"upload.public_base_url":  "PUBLIC_BASE_URL",
	"tracing.jaeger_endpoint": "JAEGER_ENDPOINT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.frontend_url", "http://localhost:3000")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "nutribakery")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("kafka.group_id", "nutribakery-notifications")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("openai.model", "gpt-3.5-turbo")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("upload.dir", "./uploads")
	v.SetDefault("upload.public_base_url", "http://localhost:8080")
}

// Load reads config.yaml from path (or ./ and /etc/nutribakery when empty), then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
		v.AddConfigPath("/etc/nutribakery/")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// splitList accepts both a yaml list and a comma separated env value
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET is required outside development")
		}
		c.Auth.JWTSecret = "dev-secret-change-me"
	}
	if c.SMTP.ContactInbox == "" {
		c.SMTP.ContactInbox = c.SMTP.User
	}
	return nil
}
