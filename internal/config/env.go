package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDataDir    = "LEADCONSOLE_DATA_DIR"
	EnvBackendURL = "LEADCONSOLE_BACKEND_URL"
	EnvPort       = "LEADCONSOLE_PORT"
	EnvAppEnv     = "LEADCONSOLE_ENV"
)

// LoadDotEnv loads KEY=VALUE pairs from files into the process environment
// without overriding variables that are already set. Missing files are fine.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// OverlayEnv applies LEADCONSOLE_* overrides on top of the file config.
func OverlayEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvBackendURL)); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAppEnv)); v != "" {
		cfg.App.Env = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(EnvPort + " must be a number")
		}
		cfg.App.Port = port
	}
	return nil
}

func DataDir() string {
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		return v
	}
	return "."
}
