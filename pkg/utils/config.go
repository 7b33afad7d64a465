package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Email    EmailConfig
	AMQP     AMQPConfig
	GenAI    GenAIConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout int
	AllowedOrigins  []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret       string
	ExpiryHours  int
	CookieSecure bool
}

// AdminConfig holds the bootstrap admin account created on startup.
type AdminConfig struct {
	Email    string
	Password string
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type GenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// .env is optional, real environment variables always win
	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.AutomaticEnv()

	config := configFrom(v)
	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "travel-agency")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("AMQP_EXCHANGE", "reservation_events")
	v.SetDefault("GENAI_MODEL", "gemini-1.5-flash")
	v.SetDefault("GENAI_BASE_URL", "https://generativelanguage.googleapis.com/")
}

func configFrom(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			ShutdownTimeout: v.GetInt("SHUTDOWN_TIMEOUT_SECONDS"),
			AllowedOrigins:  splitList(v.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			ExpiryHours:  v.GetInt("JWT_EXPIRY_HOURS"),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		Admin: AdminConfig{
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		Email: EmailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("EMAIL_FROM"),
		},
		AMQP: AMQPConfig{
			URL:      v.GetString("AMQP_URL"),
			Exchange: v.GetString("AMQP_EXCHANGE"),
		},
		GenAI: GenAIConfig{
			APIKey:  v.GetString("GENAI_API_KEY"),
			Model:   v.GetString("GENAI_MODEL"),
			BaseURL: v.GetString("GENAI_BASE_URL"),
		},
	}
}

// splitList parses a comma separated value, dropping empty items.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
