// Package config reads SteelBuild settings from the environment. A .env
// file in the working directory is loaded first when present; variables
// already set in the environment win.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type PushConfig struct {
	Enabled    bool
	Endpoint   string
	TimeoutMs  int
	MaxRetries int
	RatePerSec float64
}

// Timeout returns TimeoutMs as a duration.
func (p PushConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutMs) * time.Millisecond
}

type UserConfig struct {
	Email    string
	FullName string
	Role     string
}

type Config struct {
	DBPath          string
	LogLevel        string
	HTTPAddr        string
	MonitorSchedule string
	CertWindowDays  int
	User            UserConfig
	Push            PushConfig
}

// CertWindow is the look-ahead used for certification expiry alerts.
func (c Config) CertWindow() time.Duration {
	return time.Duration(c.CertWindowDays) * 24 * time.Hour
}

// DefaultConfig returns the settings used when nothing is configured.
// Push delivery is disabled by default.
func DefaultConfig() Config {
	return Config{
		DBPath:          defaultDBPath(),
		LogLevel:        "info",
		HTTPAddr:        ":8080",
		MonitorSchedule: "@every 15m",
		CertWindowDays:  30,
		User: UserConfig{
			Email:    "pm@steelbuild.local",
			FullName: "Project Manager",
			Role:     "admin",
		},
		Push: PushConfig{
			Enabled:    false,
			Endpoint:   "http://localhost:9090/push",
			TimeoutMs:  5000,
			MaxRetries: 2,
			RatePerSec: 10,
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "steelbuild.db"
	}
	return home + "/.steelbuild/steelbuild.db"
}

// Load reads envFile (if it exists) and then the STEELBUILD_* variables.
// Pass "" to use ".env".
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv(), nil
}

// FromEnv applies STEELBUILD_* overrides to the defaults. Malformed
// numeric values are ignored.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STEELBUILD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STEELBUILD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("STEELBUILD_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("STEELBUILD_MONITOR_SCHEDULE"); v != "" {
		cfg.MonitorSchedule = v
	}
	if v := os.Getenv("STEELBUILD_CERT_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CertWindowDays = n
		}
	}
	if v := os.Getenv("STEELBUILD_USER_EMAIL"); v != "" {
		cfg.User.Email = v
	}
	if v := os.Getenv("STEELBUILD_USER_NAME"); v != "" {
		cfg.User.FullName = v
	}
	if v := os.Getenv("STEELBUILD_USER_ROLE"); v != "" {
		cfg.User.Role = v
	}
	if v := os.Getenv("STEELBUILD_PUSH_ENABLED"); v != "" {
		cfg.Push.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STEELBUILD_PUSH_ENDPOINT"); v != "" {
		cfg.Push.Endpoint = v
	}
	if v := os.Getenv("STEELBUILD_PUSH_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Push.TimeoutMs = n
		}
	}
	if v := os.Getenv("STEELBUILD_PUSH_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Push.MaxRetries = n
		}
	}
	if v := os.Getenv("STEELBUILD_PUSH_RATE_PER_SEC"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Push.RatePerSec = f
		}
	}
	return cfg
}
