package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// SMTP holds the outbound mail relay settings. To is the fixed destination for
// contact-form messages (the site owner).
type SMTP struct {
	Host        string
	Port        string
	User        string
	Password    string
	To          string
	DialTimeout time.Duration
}

type Config struct {
	Port          string
	SessionSecret string
	DatabaseURL   string
	SMTP          SMTP
}

// Load reads configuration from the environment. SESSION_SECRET is the only
// required value; everything else has a local-development default.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "blog.db")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("SMTP_DIAL_TIMEOUT", "10s")

	secret := v.GetString("SESSION_SECRET")
	if secret == "" {
		return nil, errors.New("SESSION_SECRET environment variable not set")
	}

	return &Config{
		Port:          v.GetString("PORT"),
		SessionSecret: secret,
		DatabaseURL:   v.GetString("DATABASE_URL"),
		SMTP: SMTP{
			Host:        v.GetString("SMTP_HOST"),
			Port:        v.GetString("SMTP_PORT"),
			User:        v.GetString("SMTP_USER"),
			Password:    v.GetString("SMTP_PASSWORD"),
			To:          v.GetString("SMTP_TO"),
			DialTimeout: v.GetDuration("SMTP_DIAL_TIMEOUT"),
		},
	}, nil
}
