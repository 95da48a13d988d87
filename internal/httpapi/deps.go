package httpapi

import (
	"sync/atomic"

	"leadconsole/internal/config"
	"leadconsole/internal/console"
	"leadconsole/internal/events"
	"leadconsole/internal/filter"
	"leadconsole/internal/logging"
	"leadconsole/internal/session"
	"leadconsole/internal/store"
)

type Deps struct {
	DB *store.DB

	Hub *events.Hub
	Log *logging.Logger

	Leads   *console.Controller
	Panel   *filter.Panel
	Session *session.Manager

	// CookieName is the session cookie mirrored onto the console origin for
	// the route guard.
	CookieName string

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
