package repository

import (
	"database/sql"
	"fmt"

	"hymnal/model"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	GetUserByUsername(username string) (*model.User, error)
	UpsertUser(user *model.User) error
}

// mysqlUserRepository implements UserRepository for MySQL.
type mysqlUserRepository struct {
	db    *sql.DB
	table string
}

// NewMySQLUserRepository creates a new mysqlUserRepository.
func NewMySQLUserRepository(db *sql.DB, table string) UserRepository {
	return &mysqlUserRepository{db: db, table: table}
}

// GetUserByUsername retrieves a user by their username.
func (r *mysqlUserRepository) GetUserByUsername(username string) (*model.User, error) {
	query := fmt.Sprintf("SELECT username, password_hash, role, created_at, updated_at FROM %s WHERE username = ?", r.table)
	row := r.db.QueryRow(query, username)
	user := &model.User{}
	err := row.Scan(&user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to scan user row for username %s: %w", username, err)
	}
	return user, nil
}

// UpsertUser creates a user or replaces their password hash and role.
func (r *mysqlUserRepository) UpsertUser(user *model.User) error {
	query := fmt.Sprintf(`INSERT INTO %s (username, password_hash, role) VALUES (?, ?, ?)
	ON DUPLICATE KEY UPDATE password_hash = VALUES(password_hash), role = VALUES(role)`, r.table)
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert user statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.Username, user.PasswordHash, user.Role)
	if err != nil {
		return fmt.Errorf("failed to execute upsert user statement: %w", err)
	}
	return nil
}
