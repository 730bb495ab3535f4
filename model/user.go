package model

import "time"

// User represents a login user.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Not exposed in API responses
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
