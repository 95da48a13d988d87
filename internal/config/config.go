package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port int    `yaml:"port" json:"port"`
		Env  string `yaml:"env" json:"env"`
	} `yaml:"app" json:"app"`

	Backend struct {
		BaseURL           string  `yaml:"base_url" json:"base_url"`
		TimeoutSeconds    int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Burst             int     `yaml:"burst" json:"burst"`
	} `yaml:"backend" json:"backend"`

	Leads struct {
		PageSize int `yaml:"page_size" json:"page_size"`
	} `yaml:"leads" json:"leads"`

	Session struct {
		CookieName     string `yaml:"cookie_name" json:"cookie_name"`
		KeyringAccount string `yaml:"keyring_account" json:"keyring_account"`
	} `yaml:"session" json:"session"`

	Auth struct {
		SignInPath string `yaml:"signin_path" json:"signin_path"`
	} `yaml:"auth" json:"auth"`

	Cache struct {
		SnapshotTTLMinutes int `yaml:"snapshot_ttl_minutes" json:"snapshot_ttl_minutes"`
		PruneSeconds       int `yaml:"prune_seconds" json:"prune_seconds"`
	} `yaml:"cache" json:"cache"`
}

func Defaults() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.App.Env = "production"
	cfg.Backend.BaseURL = "http://localhost:8000"
	cfg.Backend.TimeoutSeconds = 20
	cfg.Backend.RequestsPerSecond = 5
	cfg.Backend.Burst = 5
	cfg.Leads.PageSize = 20
	cfg.Session.CookieName = "accessToken"
	cfg.Session.KeyringAccount = "leadconsole:session"
	cfg.Auth.SignInPath = "/api/v1/user/login"
	cfg.Cache.SnapshotTTLMinutes = 60
	cfg.Cache.PruneSeconds = 300
	return cfg
}

// Load reads path over the defaults, so keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

func (c Config) SnapshotTTL() time.Duration {
	return time.Duration(c.Cache.SnapshotTTLMinutes) * time.Minute
}

func (c Config) PruneInterval() time.Duration {
	return time.Duration(c.Cache.PruneSeconds) * time.Second
}
