package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"hymnal/config"
	"hymnal/core/auth"
	"hymnal/core/stats"
	"hymnal/logger"
	"hymnal/repository"
)

// APIHandler handles all API requests.
type APIHandler struct {
	songRepo    repository.SongRecordRepository
	catalogRepo repository.CatalogRepository
	userRepo    repository.UserRepository
	tokens      *auth.TokenIssuer
	cfg         *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	songRepo repository.SongRecordRepository,
	catalogRepo repository.CatalogRepository,
	userRepo repository.UserRepository,
	tokens *auth.TokenIssuer,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		songRepo:    songRepo,
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
		tokens:      tokens,
		cfg:         cfg,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("failed to encode response body", logger.ErrorField(err))
		}
	}
}

// writeMessage writes a {"message": ...} JSON body.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeRepoError translates repository errors into responses. Validation
// failures surface with their message; anything else is logged in full
// and answered with a generic 500.
func writeRepoError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrValidation) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Error("storage operation failed", logger.String("op", op), logger.ErrorField(err))
	writeMessage(w, http.StatusInternalServerError, "Internal server error")
}

// HealthHandler reports liveness.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ChartsHandler serves the derived play statistics, computed fresh from
// the full record set on every request.
func (h *APIHandler) ChartsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.songRepo.List(r.Context())
	if err != nil {
		writeRepoError(w, "stats.list", err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Build(records, timeNow()))
}
