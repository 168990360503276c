package http

import (
	"net/http"

	"github.com/MKhiriev/go-ledger-sync/internal/utils"
)

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.endpoint.GetUserInfo(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.getUser", err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}
