package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type NotifyConfig struct {
	AlertWindowDays      int  `mapstructure:"alert_window_days"`
	CompletedWindowHours int  `mapstructure:"completed_window_hours"`
	RepeatWindowHours    int  `mapstructure:"repeat_window_hours"`
	Hour                 int  `mapstructure:"hour"`
	Enabled              bool `mapstructure:"enabled"`
}

func (c NotifyConfig) CompletedWindow() time.Duration {
	return time.Duration(c.CompletedWindowHours) * time.Hour
}

func (c NotifyConfig) RepeatWindow() time.Duration {
	return time.Duration(c.RepeatWindowHours) * time.Hour
}

type EmailConfig struct {
	From       string `mapstructure:"from"`
	SMTPHost   string `mapstructure:"smtp_host"`
	SMTPPort   int    `mapstructure:"smtp_port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	Recipients string `mapstructure:"recipients"`
}

// RecipientList splits the comma-separated recipients value, dropping empty
// entries. An empty list disables delivery without being an error.
func (c EmailConfig) RecipientList() []string {
	var recipients []string
	for _, addr := range strings.Split(c.Recipients, ",") {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}

type OpsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type Config struct {
	DatabaseURL string       `mapstructure:"database_url"`
	Notify      NotifyConfig `mapstructure:"notify"`
	Email       EmailConfig  `mapstructure:"email"`
	Ops         OpsConfig    `mapstructure:"ops"`
}

// Load reads configuration from an optional config.yaml and UPKEEP_-prefixed
// environment variables, environment taking precedence.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults double as env-binding keys for viper's Unmarshal.
	v.SetDefault("database_url", "")
	v.SetDefault("notify.alert_window_days", 7)
	v.SetDefault("notify.completed_window_hours", 24)
	v.SetDefault("notify.repeat_window_hours", 24)
	v.SetDefault("notify.hour", 8)
	v.SetDefault("notify.enabled", true)
	v.SetDefault("email.from", "")
	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.username", "")
	v.SetDefault("email.password", "")
	v.SetDefault("email.recipients", "")
	v.SetDefault("ops.enabled", false)
	v.SetDefault("ops.port", 8080)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("UPKEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("database_url is required")
	}
	if c.Notify.AlertWindowDays <= 0 {
		return fmt.Errorf("notify.alert_window_days must be positive, got %d", c.Notify.AlertWindowDays)
	}
	if c.Notify.CompletedWindowHours <= 0 {
		return fmt.Errorf("notify.completed_window_hours must be positive, got %d", c.Notify.CompletedWindowHours)
	}
	if c.Notify.RepeatWindowHours <= 0 {
		return fmt.Errorf("notify.repeat_window_hours must be positive, got %d", c.Notify.RepeatWindowHours)
	}
	if c.Notify.Hour < 0 || c.Notify.Hour > 23 {
		return fmt.Errorf("notify.hour must be between 0 and 23, got %d", c.Notify.Hour)
	}
	return nil
}
