package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"leadconsole/internal/config"
	"leadconsole/internal/console"
	"leadconsole/internal/domain"
	"leadconsole/internal/events"
	"leadconsole/internal/filter"
	"leadconsole/internal/leadsapi"
	"leadconsole/internal/logging"
	"leadconsole/internal/session"
	"leadconsole/internal/store"
)

// app is everything one process needs, wired the same way for serve and
// the one-shot commands.
type app struct {
	dataDir     string
	userCfgPath string
	cfg         config.Config

	log     *logging.Logger
	lock    *flock.Flock
	db      *store.DB
	client  *leadsapi.Client
	hub     *events.Hub
	leads   *console.Controller
	panel   *filter.Panel
	session *session.Manager
}

func (o *rootOptions) loadConfig() (string, config.Config, error) {
	if err := os.MkdirAll(o.dataDir, 0o755); err != nil {
		return "", config.Config{}, err
	}
	userCfgPath, err := config.EnsureUserConfig(o.dataDir, o.defaultCfgPath)
	if err != nil {
		return "", config.Config{}, fmt.Errorf("config bootstrap failed: %w", err)
	}
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return "", config.Config{}, fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	if err := config.OverlayEnv(&cfg); err != nil {
		return "", config.Config{}, err
	}
	return userCfgPath, cfg, nil
}

// openApp loads config, takes the data dir lock and wires the console.
// notifier receives toasts in addition to the SSE hub.
func openApp(ctx context.Context, o *rootOptions, notifier console.Notifier) (*app, error) {
	userCfgPath, cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		return nil, config.Validate(cfg)
	}

	log := logging.New(cfg.App.Env)
	for _, w := range vr.Warnings {
		log.Warn("config_warning", "warning", w)
	}

	lock := flock.New(filepath.Join(o.dataDir, "leadconsole.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, errors.New("another leadconsole process is using " + o.dataDir)
	}

	a := &app{
		dataDir:     o.dataDir,
		userCfgPath: userCfgPath,
		cfg:         cfg,
		log:         log,
		lock:        lock,
		hub:         events.NewHub(),
		panel:       &filter.Panel{},
	}

	a.db, err = store.Open(filepath.Join(o.dataDir, "leadconsole.db"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	a.client, err = leadsapi.New(leadsapi.Options{
		BaseURL:           cfg.Backend.BaseURL,
		Timeout:           cfg.BackendTimeout(),
		RequestsPerSecond: cfg.Backend.RequestsPerSecond,
		Burst:             cfg.Backend.Burst,
		CookieName:        cfg.Session.CookieName,
		SignInPath:        cfg.Auth.SignInPath,
		Logger:            log.Logger,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	toasts := fanout{a.hub}
	if notifier != nil {
		toasts = append(toasts, notifier)
	}

	validator := domain.NewValidator()
	a.leads = console.New(console.Options{
		API:       a.client,
		Validator: validator,
		Notifier:  toasts,
		Cache:     a.db,
		Logger:    log.Logger,
		PageSize:  cfg.Leads.PageSize,
		OnChange:  a.hub.PublishState,
	})
	a.session = session.NewManager(session.Options{
		Gateway:   a.client,
		Tokens:    session.Keychain{Account: cfg.Session.KeyringAccount},
		Cache:     a.db,
		Validator: validator,
		Notifier:  toasts,
		Logger:    log.Logger,
		OnLogout: func(context.Context) {
			a.leads.Reset()
			a.panel.Close()
		},
		OnChange: func(c session.Change) {
			a.hub.PublishSession(events.SessionChange{
				SignedIn:    c.SignedIn,
				DisplayName: c.DisplayName,
				Redirect:    c.Redirect,
			})
		},
	})

	if a.session.Restore() {
		a.leads.Restore(ctx)
	}
	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.lock != nil {
		_ = a.lock.Unlock()
	}
}

type fanout []console.Notifier

func (f fanout) Notify(t console.Toast) {
	for _, n := range f {
		n.Notify(t)
	}
}
