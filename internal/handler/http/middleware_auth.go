package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
)

// authenticate is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates
// it via [service.AuthService.ParseToken] and, on success, stores the
// client name in the request context under [utils.ClientCtxKey].
//
// Requests are rejected with HTTP 401 when the header is absent or
// malformed, or when the token is expired or invalid.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if strings.TrimSpace(authHeader) == "" {
			log.Err(ErrEmptyAuthorizationHeader).Str("func", "*Handler.authenticate").Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Str("func", "*Handler.authenticate").Send()
			utils.WriteError(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.auth.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, "*Handler.authenticate", err)
			return
		}

		ctx = context.WithValue(ctx, utils.ClientCtxKey, token.Client)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
