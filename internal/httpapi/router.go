package httpapi

import (
	"net/http"

	"leadconsole/internal/guard"
)

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Leads list
	lh := LeadsHandler{Leads: d.Leads}
	mux.HandleFunc("/api/leads", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Create,
	}))
	mux.HandleFunc("/api/leads/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: lh.DeleteByPath, // expects /api/leads/{id}
	}))
	mux.HandleFunc("/api/leads/state", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.State,
	}))
	mux.HandleFunc("/api/leads/fetch", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Fetch,
	}))
	mux.HandleFunc("/api/leads/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Refresh,
	}))
	mux.HandleFunc("/api/leads/next", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Next,
	}))
	mux.HandleFunc("/api/leads/prev", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Prev,
	}))
	mux.HandleFunc("/api/leads/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Search,
	}))
	mux.HandleFunc("/api/leads/search-text", methodMux(map[string]http.HandlerFunc{
		http.MethodPut:    lh.SetSearchText,
		http.MethodDelete: lh.CleanSearch,
	}))
	mux.HandleFunc("/api/leads/page-size", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: lh.PageSize,
	}))

	// Filter panel
	fh := FilterHandler{Panel: d.Panel, Leads: d.Leads}
	mux.HandleFunc("/api/filter", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: fh.Get,
		http.MethodPut: fh.Put,
	}))
	mux.HandleFunc("/api/filter/open", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: fh.Open,
	}))
	mux.HandleFunc("/api/filter/apply", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: fh.Apply,
	}))
	mux.HandleFunc("/api/filter/clear", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: fh.Clear,
	}))
	mux.HandleFunc("/api/filter/close", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: fh.Close,
	}))

	// Auth
	ah := AuthHandler{Session: d.Session, CookieName: d.CookieName, Log: d.Log}
	mux.HandleFunc("/api/auth/signup", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.SignUp,
	}))
	mux.HandleFunc("/api/auth/signin", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.SignIn,
	}))
	mux.HandleFunc("/api/auth/logout", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Logout,
	}))
	mux.HandleFunc("/api/session", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Info,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Leads:       d.Leads,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Engine ops
	hh := HealthHandler{Hub: d.Hub}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))
	dh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Checkpoint,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Pages
	ph := PagesHandler{Session: d.Session}
	mux.Handle("/", guard.Middleware(d.CookieName)(methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Serve,
	})))

	return mux
}

// Handler wraps mux with the standard middleware chain.
func Handler(mux http.Handler, d Deps) http.Handler {
	return Chain(mux, RequestID, Recover(d.Log), AccessLog(d.Log), Cors)
}
