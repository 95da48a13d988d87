package httpapi

import (
	"net/http"

	"leadconsole/internal/guard"
	"leadconsole/internal/session"
)

var pages = map[string]string{
	"/":              "home",
	guard.SignInPath: "signin",
	guard.SignUpPath: "signup",
	guard.HomePath:   "dashboard",
	"/leads":         "leads",
}

// PagesHandler answers page routes with a page descriptor the UI boots
// from. It is mounted behind guard.Middleware.
type PagesHandler struct {
	Session *session.Manager
}

type pageDescriptor struct {
	Page    string       `json:"page"`
	Path    string       `json:"path"`
	Session session.Info `json:"session"`
}

func (h PagesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name, ok := pages[r.URL.Path]
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "page not found")
		return
	}
	WriteJSON(w, http.StatusOK, pageDescriptor{
		Page:    name,
		Path:    r.URL.Path,
		Session: h.Session.Info(r.Context()),
	})
}
