package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type syncStatusResponse struct {
	models.SyncStatus
	NeedSync bool `json:"need_sync"`
}

func (h *Handler) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.endpoint.GetIsNeedSync(r.Context(), bookFrom(r))
	if err != nil {
		writeError(w, r, "*Handler.getSyncStatus", err)
		return
	}

	utils.WriteJSON(w, syncStatusResponse{SyncStatus: status, NeedSync: status.NeedSync()}, http.StatusOK)
}

// sync schedules a sync of the book. With ?wait=true the request blocks
// until the run finishes and reports its outcome.
func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))

	run := h.endpoint.ToSync(bookFrom(r))
	if !wait {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if err := run.Wait(r.Context()); err != nil {
		writeError(w, r, "*Handler.sync", err)
		return
	}
	h.getSyncStatus(w, r)
}

func (h *Handler) cancelSync(w http.ResponseWriter, r *http.Request) {
	h.endpoint.CancelSync(bookFrom(r))

	w.WriteHeader(http.StatusNoContent)
}
