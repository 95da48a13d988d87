package httpapi

import (
	"net/http"
	"strings"

	"leadconsole/internal/console"
	"leadconsole/internal/domain"
)

type LeadsHandler struct {
	Leads *console.Controller
}

func (h LeadsHandler) reply(w http.ResponseWriter, r *http.Request, snap console.Snapshot, err error) {
	if err != nil {
		WriteFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, snap)
}

func (h LeadsHandler) State(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Leads.Snapshot())
}

func (h LeadsHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Page int `json:"page"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	snap, err := h.Leads.FetchPage(opCtx(r), in.Page)
	h.reply(w, r, snap, err)
}

func (h LeadsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Leads.Refresh(opCtx(r))
	h.reply(w, r, snap, err)
}

func (h LeadsHandler) Next(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Leads.Next(opCtx(r))
	h.reply(w, r, snap, err)
}

func (h LeadsHandler) Prev(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Leads.Prev(opCtx(r))
	h.reply(w, r, snap, err)
}

func (h LeadsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Q string `json:"q"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	snap, err := h.Leads.Search(opCtx(r), in.Q)
	h.reply(w, r, snap, err)
}

func (h LeadsHandler) SetSearchText(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	WriteJSON(w, http.StatusOK, h.Leads.SetSearchText(in.Text))
}

func (h LeadsHandler) CleanSearch(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Leads.CleanSearch())
}

func (h LeadsHandler) PageSize(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Size int `json:"size"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	snap, err := h.Leads.ChangePageSize(opCtx(r), in.Size)
	h.reply(w, r, snap, err)
}

func (h LeadsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.LeadInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.Leads.Create(opCtx(r), in); err != nil {
		WriteFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, h.Leads.Snapshot())
}

// DeleteByPath expects /api/leads/{id}.
func (h LeadsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/leads/"), "/")
	if err := h.Leads.Delete(opCtx(r), id); err != nil {
		WriteFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, h.Leads.Snapshot())
}
