package httpapi

import (
	"net"
	"net/http"

	"leadconsole/internal/store"
)

type DBHandler struct {
	DB *store.DB
}

func (h DBHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	if !isLocal(r) {
		WriteError(w, r, http.StatusForbidden, "forbidden", "forbidden")
		return
	}

	if err := h.DB.Checkpoint(r.Context()); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "checkpoint_failed", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isLocal(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return host == "127.0.0.1" || host == "::1" || host == "localhost"
}
