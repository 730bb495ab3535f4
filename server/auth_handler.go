package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"hymnal/core/auth"
	"hymnal/logger"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

type contextKey string

const (
	usernameKey contextKey = "username"
	roleKey     contextKey = "role"
)

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse represents a successful login or refresh.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}

// LoginHandler handles user login requests.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.userRepo.GetUserByUsername(req.Username)
	if err != nil {
		logger.Error("[Login] failed to query user", logger.ErrorField(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		logger.Warn("[Login] unknown user", logger.String("username", req.Username))
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		logger.Warn("[Login] password mismatch", logger.String("username", req.Username))
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	accessToken, err := h.tokens.GenerateToken(user.Username, user.Role)
	if err != nil {
		logger.Error("[Login] failed to generate token", logger.ErrorField(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(user.Username)
	if err != nil {
		logger.Error("[Login] failed to generate refresh token", logger.ErrorField(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("[Login] login successful", logger.String("username", user.Username))
	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Role:         user.Role,
	})
}

// RefreshHandler exchanges a valid refresh token for a fresh token pair.
// The user must still exist; the role is re-read so role changes take
// effect at the next refresh.
func (h *APIHandler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeMessage(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	claims, err := h.tokens.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	user, err := h.userRepo.GetUserByUsername(claims.Username)
	if err != nil {
		logger.Error("[Refresh] failed to query user", logger.ErrorField(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "User no longer exists")
		return
	}

	accessToken, err := h.tokens.GenerateToken(user.Username, user.Role)
	if err != nil {
		logger.Error("[Refresh] failed to generate token", logger.ErrorField(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(user.Username)
	if err != nil {
		logger.Error("[Refresh] failed to generate refresh token", logger.ErrorField(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Role:         user.Role,
	})
}

// AuthMiddleware is a middleware function that checks for a valid JWT token.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeMessage(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeMessage(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := h.tokens.ParseToken(parts[1])
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), usernameKey, claims.Username)
		ctx = context.WithValue(ctx, roleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// GetUsernameFromContext extracts the username from the request context.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok
}

// GetRoleFromContext extracts the role from the request context.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}
