package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong
// with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation
	def := Defaults()

	out.App.Env = strings.ToLower(strings.TrimSpace(out.App.Env))
	out.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(out.Backend.BaseURL), "/")
	out.Session.CookieName = strings.TrimSpace(out.Session.CookieName)
	out.Auth.SignInPath = strings.TrimSpace(out.Auth.SignInPath)

	if out.Session.CookieName == "" {
		out.Session.CookieName = def.Session.CookieName
	}
	if strings.TrimSpace(out.Session.KeyringAccount) == "" {
		out.Session.KeyringAccount = def.Session.KeyringAccount
	}
	if out.Auth.SignInPath == "" {
		out.Auth.SignInPath = def.Auth.SignInPath
	}
	if !strings.HasPrefix(out.Auth.SignInPath, "/") {
		out.Auth.SignInPath = "/" + out.Auth.SignInPath
	}

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	u, err := url.Parse(out.Backend.BaseURL)
	switch {
	case out.Backend.BaseURL == "":
		res.addErr("backend.base_url is required")
	case err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https"):
		res.addErr("backend.base_url must be an absolute http(s) URL, got %q", out.Backend.BaseURL)
	case u.Scheme == "http" && !isLoopback(u.Hostname()):
		res.addWarn("backend.base_url uses plain http; the session cookie will travel unencrypted.")
	}

	if out.Backend.TimeoutSeconds <= 0 {
		res.addErr("backend.timeout_seconds must be > 0")
	}
	if out.Backend.RequestsPerSecond < 0 {
		res.addErr("backend.requests_per_second must be >= 0")
	} else if out.Backend.RequestsPerSecond == 0 {
		res.addWarn("backend.requests_per_second is 0; outbound calls are not throttled.")
	}
	if out.Backend.Burst < 0 {
		res.addErr("backend.burst must be >= 0")
	}

	switch out.Leads.PageSize {
	case 20, 50, 100:
	default:
		res.addErr("leads.page_size must be one of 20, 50, 100 (got %d)", out.Leads.PageSize)
	}

	if out.Cache.SnapshotTTLMinutes < 0 {
		res.addErr("cache.snapshot_ttl_minutes must be >= 0")
	}
	if out.Cache.PruneSeconds <= 0 {
		res.addErr("cache.prune_seconds must be > 0")
	} else if out.Cache.PruneSeconds < 10 {
		res.addWarn("cache.prune_seconds is very low (%d).", out.Cache.PruneSeconds)
	}

	return out, res
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
