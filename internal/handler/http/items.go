package http

import (
	"net/http"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// batchRequest carries actions whose values may embed binaries as base64
// data URLs; they are turned into assets before the batch is queued.
type batchRequest struct {
	Actions []models.Action `json:"actions"`
	Overlap bool            `json:"overlap"`
}

func (h *Handler) getItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.endpoint.GetAllItems(r.Context(), bookFrom(r))
	if err != nil {
		writeError(w, r, "*Handler.getItems", err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) getMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := h.endpoint.GetMeta(r.Context(), bookFrom(r))
	if err != nil {
		writeError(w, r, "*Handler.getMeta", err)
		return
	}

	utils.WriteJSON(w, meta.Clone(), http.StatusOK)
}

func (h *Handler) batch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req batchRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.batch").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.endpoint.Batch(r.Context(), bookFrom(r), req.Actions, req.Overlap); err != nil {
		writeError(w, r, "*Handler.batch", err)
		return
	}

	log.Debug().Str("func", "*Handler.batch").Int("actions", len(req.Actions)).Bool("overlap", req.Overlap).Msg("batch accepted")
	w.WriteHeader(http.StatusAccepted)
}
