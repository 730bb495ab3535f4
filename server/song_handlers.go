package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// CreateSongRequest is the body of POST /api/songs.
type CreateSongRequest struct {
	Date  string   `json:"date"`
	Songs []string `json:"songs"`
}

// UpdateSongRequest is the body of PUT /api/songs/{date}. The optional
// date field renames only the stored date, never the row key.
type UpdateSongRequest struct {
	Songs []string `json:"songs"`
	Date  string   `json:"date,omitempty"`
}

// ListSongsHandler returns every service record, most recent date first.
func (h *APIHandler) ListSongsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.songRepo.List(r.Context())
	if err != nil {
		writeRepoError(w, "songs.list", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// CreateSongHandler upserts a service record for a date.
func (h *APIHandler) CreateSongHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Songs) == 0 {
		writeMessage(w, http.StatusBadRequest, "date (string) and songs (non-empty array) are required")
		return
	}

	record, err := h.songRepo.Create(r.Context(), req.Date, req.Songs)
	if err != nil {
		writeRepoError(w, "songs.create", err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// UpdateSongHandler rewrites the record identified by the date row key.
func (h *APIHandler) UpdateSongHandler(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	var req UpdateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Songs) == 0 {
		writeMessage(w, http.StatusBadRequest, "songs (non-empty array) is required")
		return
	}

	record, err := h.songRepo.Update(r.Context(), date, req.Songs, req.Date)
	if err != nil {
		writeRepoError(w, "songs.update", err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// DeleteSongHandler removes the record for a date. Deleting an absent
// date succeeds.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	if err := h.songRepo.Delete(r.Context(), date); err != nil {
		writeRepoError(w, "songs.delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
