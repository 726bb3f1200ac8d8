package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
)

// Config holds process-wide settings, read once at startup.
type Config struct {
	DBPath          string
	RulesPath       string // empty means built-in rules
	UserID          string
	HTTPAddr        string
	LogUseCases     bool
	DispatchWorkers int
}

// DefaultConfig returns the defaults used when no environment overrides are set.
// The DB path is left empty and resolved against the home directory by Load.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:        ":8080",
		DispatchWorkers: 4,
	}
}

// Load reads configuration from SHIFTPAY_* environment variables, falling
// back to defaults for unset or unparsable values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("SHIFTPAY_DB"); v != "" {
		cfg.DBPath = v
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".shiftpay", "shiftpay.db")
	}
	cfg.RulesPath = os.Getenv("SHIFTPAY_RULES")

	if v := os.Getenv("SHIFTPAY_USER"); v != "" {
		cfg.UserID = v
	} else {
		cfg.UserID = defaultUserID()
	}
	if v := os.Getenv("SHIFTPAY_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("SHIFTPAY_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SHIFTPAY_DISPATCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DispatchWorkers = n
		}
	}
	return cfg, nil
}

// defaultUserID is the OS login name, so a single-user CLI needs no flag.
func defaultUserID() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "default"
}
