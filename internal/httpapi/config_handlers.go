package httpapi

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"sync/atomic"

	"leadconsole/internal/config"
	"leadconsole/internal/console"
)

// ConfigHandler edits the user config file. A new leads.page_size is applied
// to the list at once; every other section is read at startup only.
type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
	Leads       *console.Controller
}

type configSaved struct {
	config.Config
	RestartRequired []string          `json:"restart_required"`
	List            *console.Snapshot `json:"list,omitempty"`
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	WriteJSON(w, http.StatusOK, cur)
}

func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var incoming config.Config
	if err := dec.Decode(&incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if dec.More() {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: trailing data")
		return
	}

	normalized, vr := config.NormalizeAndValidate(incoming)
	if !vr.OK() {
		WriteJSON(w, http.StatusUnprocessableEntity, vr)
		return
	}

	prev := h.CfgVal.Load().(config.Config)
	if err := config.SaveAtomic(h.UserCfgPath, normalized); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	saved, err := h.LoadCfg()
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "reload_failed", "saved but reload failed: "+err.Error())
		return
	}
	h.CfgVal.Store(saved)

	out := configSaved{Config: saved, RestartRequired: restartRequired(prev, saved)}
	if h.Leads != nil && saved.Leads.PageSize != h.Leads.Snapshot().PageSize {
		snap, err := h.Leads.ChangePageSize(opCtx(r), saved.Leads.PageSize)
		if err != nil {
			WriteFailure(w, r, err)
			return
		}
		out.List = &snap
	}
	WriteJSON(w, http.StatusOK, out)
}

// restartRequired lists the sections that changed but only take effect when
// the console starts again.
func restartRequired(prev, next config.Config) []string {
	out := []string{}
	if prev.App != next.App {
		out = append(out, "app")
	}
	if prev.Backend != next.Backend {
		out = append(out, "backend")
	}
	if prev.Session != next.Session {
		out = append(out, "session")
	}
	if prev.Auth != next.Auth {
		out = append(out, "auth")
	}
	if prev.Cache != next.Cache {
		out = append(out, "cache")
	}
	return out
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	abs, _ := filepath.Abs(h.UserCfgPath)
	WriteJSON(w, http.StatusOK, map[string]any{"path": abs})
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	_, vr := config.NormalizeAndValidate(cur)
	WriteJSON(w, http.StatusOK, vr)
}
