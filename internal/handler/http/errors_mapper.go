package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/internal/validators"
)

// errorStatusMap is walked in order by statusFromError, so wrapped errors
// that match several entries resolve to the first one.
var errorStatusMap = []struct {
	err    error
	status int
}{
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrInvalidDataURL, http.StatusBadRequest},
	{validators.ErrEmptyActions, http.StatusBadRequest},
	{validators.ErrInvalidBookName, http.StatusBadRequest},
	{store.ErrEmptyBookID, http.StatusBadRequest},
	{ErrEmptyBookID, http.StatusBadRequest},
	{adapter.ErrInvalidStoreName, http.StatusBadRequest},
	{adapter.ErrInvalidCredentials, http.StatusBadRequest},
	{adapter.ErrBadRequest, http.StatusBadRequest},

	{service.ErrNotLoggedIn, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{store.ErrSessionNotFound, http.StatusUnauthorized},
	{store.ErrSessionExpired, http.StatusUnauthorized},
	{adapter.ErrUnauthorized, http.StatusUnauthorized},

	{adapter.ErrForbidden, http.StatusForbidden},
	{adapter.ErrNotFound, http.StatusNotFound},
	{ErrAssetNotFound, http.StatusNotFound},
	{adapter.ErrConflict, http.StatusConflict},
	{service.ErrSyncLockTimeout, http.StatusConflict},

	{adapter.ErrNotSupported, http.StatusNotImplemented},
	{adapter.ErrUnknownBackend, http.StatusNotImplemented},

	{service.ErrCorruptedChunk, http.StatusBadGateway},
	{service.ErrCorruptedMeta, http.StatusBadGateway},
	{adapter.ErrBadGateway, http.StatusBadGateway},
	{adapter.ErrInternalServerError, http.StatusBadGateway},

	{service.ErrEndpointClosed, http.StatusServiceUnavailable},
	{service.ErrSchedulerClosed, http.StatusServiceUnavailable},
}

func statusFromError(err error) int {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with the status it maps to. Server side
// failures hide the error text.
func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Int("status", status).Msg("request failed")
	} else {
		log.Warn().Err(err).Str("func", fn).Int("status", status).Msg("request rejected")
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	utils.WriteError(w, msg, status)
}
