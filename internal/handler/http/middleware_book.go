package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
)

// withBook moves the {bookID} URL parameter into the request context and
// tags the request logger with it.
func (h *Handler) withBook(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bookID := chi.URLParam(r, "bookID")
		if bookID == "" {
			writeError(w, r, "*Handler.withBook", ErrEmptyBookID)
			return
		}

		l := logger.FromRequest(r).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("book_id", bookID)
		})
		ctx := utils.WithBookID(l.WithContext(r.Context()), bookID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bookFrom returns the book id stored by withBook.
func bookFrom(r *http.Request) string {
	bookID, _ := utils.GetBookIDFromContext(r.Context())
	return bookID
}
