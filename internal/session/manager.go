// Package session signs the user in and out of the Auth Gateway and keeps
// the session cookie across engine restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"leadconsole/internal/console"
	"leadconsole/internal/domain"
	"leadconsole/internal/errnorm"
	"leadconsole/internal/leadsapi"
)

const (
	keyFullName = "fullName"
	keyEmail    = "email"

	SignInPage = "/auth/signin"
	HomePage   = "/dashboard"
)

var ErrNoSessionCookie = errors.New("sign in succeeded but no session cookie was issued")

type Gateway interface {
	SignUp(ctx context.Context, in domain.SignUpInput) error
	SignIn(ctx context.Context, creds domain.Credentials) (leadsapi.Profile, error)
	Logout(ctx context.Context) error
	SessionToken() string
	SetSessionToken(token string)
	ClearSession()
}

type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// Cache is the local session cache (display name, email).
type Cache interface {
	SetSessionValue(ctx context.Context, key, value string) error
	SessionValue(ctx context.Context, key string) (string, bool, error)
	ClearSession(ctx context.Context) error
}

type Change struct {
	SignedIn    bool
	DisplayName string
	Redirect    string
}

type Options struct {
	Gateway   Gateway
	Tokens    TokenStore
	Cache     Cache
	Validator *domain.Validator
	Notifier  console.Notifier
	Logger    *slog.Logger
	// OnChange fires after sign in and logout.
	OnChange func(Change)
	// OnLogout runs after the upstream session is gone, before OnChange.
	OnLogout func(ctx context.Context)
}

type Manager struct {
	gw       Gateway
	tokens   TokenStore
	cache    Cache
	val      *domain.Validator
	notify   console.Notifier
	log      *slog.Logger
	onChange func(Change)
	onLogout func(ctx context.Context)
}

type Info struct {
	SignedIn    bool   `json:"signedIn"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
}

func NewManager(opts Options) *Manager {
	m := &Manager{
		gw:       opts.Gateway,
		tokens:   opts.Tokens,
		cache:    opts.Cache,
		val:      opts.Validator,
		notify:   opts.Notifier,
		log:      opts.Logger,
		onChange: opts.OnChange,
		onLogout: opts.OnLogout,
	}
	if m.val == nil {
		m.val = domain.NewValidator()
	}
	if m.notify == nil {
		m.notify = console.NopNotifier{}
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	return m
}

// Restore loads a stored session cookie into the gateway client.
func (m *Manager) Restore() bool {
	if m.tokens == nil {
		return false
	}
	tok, err := m.tokens.Get()
	if err != nil {
		m.log.Warn("session_restore_failed", slog.String("error", err.Error()))
		return false
	}
	if tok == "" {
		return false
	}
	m.gw.SetSessionToken(tok)
	return true
}

func (m *Manager) Token() string { return m.gw.SessionToken() }

func (m *Manager) Info(ctx context.Context) Info {
	info := Info{SignedIn: m.gw.SessionToken() != ""}
	if m.cache == nil {
		return info
	}
	if v, ok, err := m.cache.SessionValue(ctx, keyFullName); err == nil && ok {
		info.DisplayName = v
	}
	if v, ok, err := m.cache.SessionValue(ctx, keyEmail); err == nil && ok {
		info.Email = v
	}
	return info
}

// SignUp registers a new account. On success the user is sent to sign in.
func (m *Manager) SignUp(ctx context.Context, in domain.SignUpInput) error {
	if err := m.val.Struct(in); err != nil {
		return err
	}
	if err := m.gw.SignUp(ctx, in); err != nil {
		m.fail("signup_failed", err)
		return err
	}
	m.notify.Notify(console.Toast{Level: console.LevelSuccess, Message: "Account created, please sign in"})
	return nil
}

func (m *Manager) SignIn(ctx context.Context, creds domain.Credentials) (Info, error) {
	if err := m.val.Struct(creds); err != nil {
		return Info{}, err
	}

	profile, err := m.gw.SignIn(ctx, creds)
	if err != nil {
		m.fail("signin_failed", err)
		return Info{}, err
	}

	tok := m.gw.SessionToken()
	if tok == "" {
		m.notify.Notify(console.Toast{Level: console.LevelError, Message: errnorm.Fallback})
		return Info{}, ErrNoSessionCookie
	}
	if m.tokens != nil {
		if err := m.tokens.Set(tok); err != nil {
			m.log.Warn("session_store_failed", slog.String("error", err.Error()))
		}
	}

	name := profile.DisplayName()
	if m.cache != nil {
		if name != "" {
			if err := m.cache.SetSessionValue(ctx, keyFullName, name); err != nil {
				return Info{}, fmt.Errorf("cache display name: %w", err)
			}
		}
		if profile.Email != "" {
			if err := m.cache.SetSessionValue(ctx, keyEmail, profile.Email); err != nil {
				return Info{}, fmt.Errorf("cache email: %w", err)
			}
		}
	}

	m.changed(Change{SignedIn: true, DisplayName: name, Redirect: HomePage})
	return Info{SignedIn: true, DisplayName: name, Email: profile.Email}, nil
}

// Logout ends the upstream session, then forgets everything kept locally.
// If the gateway refuses, nothing local is cleared.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.gw.Logout(ctx); err != nil {
		m.fail("logout_failed", err)
		return err
	}

	m.gw.ClearSession()
	if m.tokens != nil {
		if err := m.tokens.Delete(); err != nil {
			m.log.Warn("session_delete_failed", slog.String("error", err.Error()))
		}
	}
	if m.cache != nil {
		if err := m.cache.ClearSession(ctx); err != nil {
			m.log.Warn("session_cache_clear_failed", slog.String("error", err.Error()))
		}
	}
	if m.onLogout != nil {
		m.onLogout(ctx)
	}

	m.changed(Change{SignedIn: false, Redirect: SignInPage})
	return nil
}

func (m *Manager) fail(op string, err error) {
	msg := errnorm.Message(err)
	m.log.Warn(op, slog.String("error", err.Error()), slog.String("message", msg))
	m.notify.Notify(console.Toast{Level: console.LevelError, Message: msg})
}

func (m *Manager) changed(c Change) {
	if m.onChange != nil {
		m.onChange(c)
	}
}
