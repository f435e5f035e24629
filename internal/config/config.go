package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Whop     WhopConfig     `mapstructure:"whop"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
	// Timezone used for calendar-day bucketing when the client sends none.
	Timezone string `mapstructure:"timezone"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type OpenAIConfig struct {
	APIKey              string  `mapstructure:"api_key"`
	BaseURL             string  `mapstructure:"base_url"`
	Model               string  `mapstructure:"model"`
	AnalysisTemperature float32 `mapstructure:"analysis_temperature"`
	InsightsTemperature float32 `mapstructure:"insights_temperature"`
}

type WhopConfig struct {
	AppID          string `mapstructure:"app_id"`
	TokenPublicKey string `mapstructure:"token_public_key"`
	TokenSecret    string `mapstructure:"token_secret"`
	DevBypassAuth  bool   `mapstructure:"dev_bypass_auth"`
	APIKey         string `mapstructure:"api_key"`
	APIBaseURL     string `mapstructure:"api_base_url"`
}

type RedisConfig struct {
	URL         string        `mapstructure:"url"`
	InsightsTTL time.Duration `mapstructure:"insights_ttl"`
}

type StorageConfig struct {
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// env names kept compatible with the existing deployment's .env files
var envBindings = map[string][]string{
	"server.port":                 {"PORT"},
	"server.environment":          {"APP_ENV", "NODE_ENV"},
	"server.timezone":             {"APP_TIMEZONE"},
	"database.url":                {"DATABASE_URL"},
	"database.host":               {"DB_HOST"},
	"database.port":               {"DB_PORT"},
	"database.user":               {"DB_USER"},
	"database.password":           {"DB_PASSWORD"},
	"database.name":               {"DB_NAME"},
	"database.sslmode":            {"DB_SSLMODE"},
	"openai.api_key":              {"OPENAI_API_KEY"},
	"openai.base_url":             {"OPENAI_BASE_URL"},
	"openai.model":                {"OPENAI_MODEL"},
	"openai.analysis_temperature": {"OPENAI_ANALYSIS_TEMPERATURE"},
	"openai.insights_temperature": {"OPENAI_INSIGHTS_TEMPERATURE"},
	"whop.app_id":                 {"WHOP_APP_ID", "NEXT_PUBLIC_WHOP_APP_ID"},
	"whop.token_public_key":       {"WHOP_TOKEN_PUBLIC_KEY"},
	"whop.token_secret":           {"WHOP_TOKEN_SECRET"},
	"whop.dev_bypass_auth":        {"DEV_BYPASS_AUTH"},
	"whop.api_key":                {"WHOP_API_KEY"},
	"whop.api_base_url":           {"WHOP_API_BASE_URL"},
	"redis.url":                   {"REDIS_URL"},
	"redis.insights_ttl":          {"INSIGHTS_CACHE_TTL"},
	"storage.bucket":              {"S3_BUCKET"},
	"storage.region":              {"S3_REGION", "AWS_REGION"},
	"storage.public_base_url":     {"S3_PUBLIC_BASE_URL", "CLOUDFRONT_URL"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("database.sslmode", "require")
	v.SetDefault("whop.api_base_url", "https://api.whop.com/api/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.analysis_temperature", 0.3)
	v.SetDefault("openai.insights_temperature", 0.7)
	v.SetDefault("redis.insights_ttl", 30*time.Minute)
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// a missing file is fine, the environment may already be populated
		_ = godotenv.Load(f)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ShowErrorDetails reports whether error responses may carry raw error text.
// Every environment except production does.
func (c *Config) ShowErrorDetails() bool {
	return !c.IsProduction()
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// Location returns the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DSN builds a libpq-style connection string. DATABASE_URL wins when set.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Host == "" {
		return ""
	}
	port := d.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s application_name=gutly",
		d.Host, d.User, d.Password, d.Name, port, d.SSLMode,
	)
}

func (d DatabaseConfig) Configured() bool {
	return d.DSN() != ""
}
