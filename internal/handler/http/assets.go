package http

import (
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// getAsset serves assets/<name> of the book, from the pending uploads first.
func (h *Handler) getAsset(w http.ResponseWriter, r *http.Request) {
	assetPath := path.Join(models.AssetsDir, chi.URLParam(r, "*"))
	if !strings.HasPrefix(assetPath, models.AssetsDir+"/") {
		writeError(w, r, "*Handler.getAsset", ErrAssetNotFound)
		return
	}

	file, ok := h.endpoint.GetOnlineAsset(r.Context(), bookFrom(r), assetPath)
	if !ok {
		writeError(w, r, "*Handler.getAsset", ErrAssetNotFound)
		return
	}

	contentType := file.MIMEType
	if contentType == "" {
		contentType = http.DetectContentType(file.Data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
