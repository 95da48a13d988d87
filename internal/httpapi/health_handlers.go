package httpapi

import (
	"net/http"

	"leadconsole/internal/events"
)

type HealthHandler struct {
	Hub *events.Hub
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{"ok": true}
	if h.Hub != nil {
		out["subscribers"] = h.Hub.Subscribers()
	}
	WriteJSON(w, http.StatusOK, out)
}
