package httpapi

import (
	"net/http"

	"leadconsole/internal/console"
	"leadconsole/internal/filter"
)

type FilterHandler struct {
	Panel *filter.Panel
	Leads *console.Controller
}

type filterResult struct {
	Params map[string]string `json:"params"`
	State  console.Snapshot  `json:"state"`
}

func (h FilterHandler) Get(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Panel.State())
}

func (h FilterHandler) Open(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Panel.Open())
}

func (h FilterHandler) Put(w http.ResponseWriter, r *http.Request) {
	var c filter.Criteria
	if !decodeBody(w, r, &c) {
		return
	}
	if !h.Panel.State().Open {
		WriteError(w, r, http.StatusConflict, "filter_closed", "open the filter panel first")
		return
	}
	WriteJSON(w, http.StatusOK, h.Panel.Set(c))
}

func (h FilterHandler) Apply(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.Panel.Apply())
}

func (h FilterHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.Panel.Clear())
}

func (h FilterHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.Panel.Close()
	WriteJSON(w, http.StatusOK, h.Panel.State())
}

func (h FilterHandler) run(w http.ResponseWriter, r *http.Request, params map[string]string) {
	snap, err := h.Leads.ApplyFilter(opCtx(r), params)
	if err != nil {
		WriteFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, filterResult{Params: params, State: snap})
}
