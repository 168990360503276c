// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type createBookRequest struct {
	Name string `json:"name"`
}

type inviteRequest struct {
	Username string `json:"username"`
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.endpoint.FetchAllBooks(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.listBooks", err)
		return
	}
	if books == nil {
		books = []models.Book{}
	}

	utils.WriteJSON(w, books, http.StatusOK)
}

func (h *Handler) listLocalBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.endpoint.LocalBooks(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.listLocalBooks", err)
		return
	}
	if books == nil {
		books = []string{}
	}

	utils.WriteJSON(w, books, http.StatusOK)
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.createBook").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	book, err := h.endpoint.CreateBook(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, "*Handler.createBook", err)
		return
	}

	utils.WriteJSON(w, book, http.StatusCreated)
}

func (h *Handler) initBook(w http.ResponseWriter, r *http.Request) {
	if err := h.endpoint.InitBook(r.Context(), bookFrom(r)); err != nil {
		writeError(w, r, "*Handler.initBook", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.endpoint.DeleteBook(r.Context(), bookFrom(r)); err != nil {
		writeError(w, r, "*Handler.deleteBook", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) inviteForBook(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.inviteForBook").Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.endpoint.InviteForBook(r.Context(), bookFrom(r), req.Username); err != nil {
		writeError(w, r, "*Handler.inviteForBook", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCollaborators(w http.ResponseWriter, r *http.Request) {
	users, err := h.endpoint.GetCollaborators(r.Context(), bookFrom(r))
	if err != nil {
		writeError(w, r, "*Handler.getCollaborators", err)
		return
	}
	if users == nil {
		users = []models.UserInfo{}
	}

	utils.WriteJSON(w, users, http.StatusOK)
}
