package server

import (
	"encoding/json"
	"net/http"

	"hymnal/repository"

	"github.com/gorilla/mux"
)

// UpsertCatalogRequest is the body of POST and PUT on /api/unique-songs.
type UpsertCatalogRequest struct {
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Aliases []string `json:"aliases,omitempty"`
	Notes   string   `json:"notes,omitempty"`
}

// ListCatalogHandler returns every catalog entry sorted by title.
func (h *APIHandler) ListCatalogHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalogRepo.List(r.Context())
	if err != nil {
		writeRepoError(w, "catalog.list", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// CreateCatalogHandler creates a catalog entry with a generated id.
func (h *APIHandler) CreateCatalogHandler(w http.ResponseWriter, r *http.Request) {
	var req UpsertCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.catalogRepo.Upsert(r.Context(), repository.CatalogUpsert{
		Title:   req.Title,
		Author:  req.Author,
		Aliases: req.Aliases,
		Notes:   req.Notes,
	})
	if err != nil {
		writeRepoError(w, "catalog.create", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// UpdateCatalogHandler replaces the entry with the given id, preserving
// its original createdAt.
func (h *APIHandler) UpdateCatalogHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpsertCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.catalogRepo.Upsert(r.Context(), repository.CatalogUpsert{
		ID:      id,
		Title:   req.Title,
		Author:  req.Author,
		Aliases: req.Aliases,
		Notes:   req.Notes,
	})
	if err != nil {
		writeRepoError(w, "catalog.update", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// DeleteCatalogHandler removes an entry by id. Absent ids succeed.
func (h *APIHandler) DeleteCatalogHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.catalogRepo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, "catalog.delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
