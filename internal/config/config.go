// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

// Package config loads PropKeep configuration with koanf.
//
// Precedence, lowest to highest: struct defaults, an optional YAML file
// (CONFIG_PATH or a default search list), environment variables. Every
// environment variable is listed in envMappings; unknown variables are
// ignored rather than guessed at.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"propkeep.yaml",
	"config/propkeep.yaml",
	"/etc/propkeep/propkeep.yaml",
}

// Config is the root configuration tree.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Log      LogConfig      `koanf:"log"`
	Notify   NotifyConfig   `koanf:"notify"`
	Seed     SeedConfig     `koanf:"seed"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimit       int           `koanf:"rate_limit"`
	RateWindow      time.Duration `koanf:"rate_window"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig controls the embedded badger store.
type DatabaseConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// AuthConfig controls bearer-token auth.
type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// LogConfig mirrors logging.Config.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// NotifyConfig gates the optional notification channels. A channel with
// incomplete credentials is simply not constructed; this is not an error.
type NotifyConfig struct {
	FilePath string      `koanf:"file_path"`
	Email    EmailConfig `koanf:"email"`
	SMS      SMSConfig   `koanf:"sms"`
	Group    GroupConfig `koanf:"group"`
}

// EmailConfig holds SMTP settings for the email channel.
type EmailConfig struct {
	Host       string   `koanf:"host"`
	Port       int      `koanf:"port"`
	Username   string   `koanf:"username"`
	Password   string   `koanf:"password"`
	From       string   `koanf:"from"`
	Recipients []string `koanf:"recipients"`
}

// Enabled reports whether the email channel has complete credentials.
func (e EmailConfig) Enabled() bool {
	return e.Host != "" && e.Username != "" && e.Password != "" && len(e.Recipients) > 0
}

// SMSConfig holds credentials for the Twilio-style SMS channel.
type SMSConfig struct {
	AccountSID string   `koanf:"account_sid"`
	AuthToken  string   `koanf:"auth_token"`
	FromNumber string   `koanf:"from_number"`
	BaseURL    string   `koanf:"base_url"`
	Recipients []string `koanf:"recipients"`
}

// Enabled reports whether the SMS channel has complete credentials.
func (s SMSConfig) Enabled() bool {
	return s.AccountSID != "" && s.AuthToken != "" && s.FromNumber != "" && len(s.Recipients) > 0
}

// GroupConfig holds the group-broadcast webhook settings.
type GroupConfig struct {
	WebhookURL string `koanf:"webhook_url"`
	GroupID    string `koanf:"group_id"`
}

// Enabled reports whether the group-broadcast channel is configured.
func (g GroupConfig) Enabled() bool {
	return g.WebhookURL != "" && g.GroupID != ""
}

// SeedConfig controls first-boot default admin creation.
type SeedConfig struct {
	DefaultAdmin  bool   `koanf:"default_admin"`
	AdminEmail    string `koanf:"admin_email"`
	AdminPassword string `koanf:"admin_password"`
}

// Default returns the built-in defaults applied before file and env layers.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimit:       20,
			RateWindow:      time.Minute,
		},
		Database: DatabaseConfig{
			Path:       "data/propkeep",
			GCInterval: 10 * time.Minute,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Notify: NotifyConfig{
			FilePath: "data/notifications.log",
			Email:    EmailConfig{Port: 587},
			SMS:      SMSConfig{BaseURL: "https://api.twilio.com"},
		},
		Seed: SeedConfig{
			AdminEmail: "admin@propkeep.local",
		},
	}
}

// envMappings maps environment variables to koanf keys. Only listed
// variables are consumed; everything else in the environment is ignored.
var envMappings = map[string]string{
	"SERVER_HOST":             "server.host",
	"SERVER_PORT":             "server.port",
	"SERVER_CORS_ORIGINS":     "server.cors_origins",
	"SERVER_RATE_LIMIT":       "server.rate_limit",
	"DATABASE_PATH":           "database.path",
	"DATABASE_IN_MEMORY":      "database.in_memory",
	"JWT_SECRET":              "auth.jwt_secret",
	"TOKEN_TTL":               "auth.token_ttl",
	"LOG_LEVEL":               "log.level",
	"LOG_FORMAT":              "log.format",
	"LOG_CALLER":              "log.caller",
	"NOTIFY_FILE_PATH":        "notify.file_path",
	"SMTP_HOST":               "notify.email.host",
	"SMTP_PORT":               "notify.email.port",
	"SMTP_USERNAME":           "notify.email.username",
	"SMTP_PASSWORD":           "notify.email.password",
	"SMTP_FROM":               "notify.email.from",
	"NOTIFY_EMAIL_RECIPIENTS": "notify.email.recipients",
	"SMS_ACCOUNT_SID":         "notify.sms.account_sid",
	"SMS_AUTH_TOKEN":          "notify.sms.auth_token",
	"SMS_FROM_NUMBER":         "notify.sms.from_number",
	"SMS_BASE_URL":            "notify.sms.base_url",
	"NOTIFY_SMS_RECIPIENTS":   "notify.sms.recipients",
	"GROUP_WEBHOOK_URL":       "notify.group.webhook_url",
	"GROUP_ID":                "notify.group.group_id",
	"SEED_DEFAULT_ADMIN":      "seed.default_admin",
	"SEED_ADMIN_EMAIL":        "seed.admin_email",
	"SEED_ADMIN_PASSWORD":     "seed.admin_password",
}

// sliceKeys are config keys whose env values arrive as comma-separated
// strings and must be split into slices after unmarshalling.
var sliceKeys = map[string]bool{
	"server.cors_origins":     true,
	"notify.email.recipients": true,
	"notify.sms.recipients":   true,
}

// Load builds the configuration from defaults, an optional YAML file, and
// the environment. The returned error only reflects malformed input; a
// missing config file is not an error.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("", ".", func(key string) string {
		if mapped, ok := envMappings[key]; ok {
			return mapped
		}
		return ""
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	// Env values for slice keys arrive as a single comma-separated string.
	for key := range sliceKeys {
		if raw := k.String(key); raw != "" && strings.Contains(raw, ",") {
			parts := strings.Split(raw, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			if err := k.Set(key, parts); err != nil {
				return nil, fmt.Errorf("splitting %s: %w", key, err)
			}
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns the first existing config file path, honoring the
// CONFIG_PATH override. Empty string means no file layer.
func findConfigFile() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate checks invariants that koanf cannot express.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (set JWT_SECRET)")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 bytes")
	}
	if c.Database.Path == "" && !c.Database.InMemory {
		return fmt.Errorf("database.path is required unless database.in_memory is set")
	}
	if c.Seed.DefaultAdmin && c.Seed.AdminPassword == "" {
		return fmt.Errorf("seed.admin_password is required when seed.default_admin is set")
	}
	return nil
}
