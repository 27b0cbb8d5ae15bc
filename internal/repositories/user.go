package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/steave-git/Streaming-Musical-Web/internal/models"
	"github.com/steave-git/Streaming-Musical-Web/internal/shared"
)

// UserRepository handles persistence for [models.User] accounts.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The password field must already be hashed.
// A duplicate username or email surfaces as [shared.ErrConflict].
func (r *UserRepository) Create(user *models.User) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO users (username, email, password, created_at) VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, user.Username, user.Email, user.Password, now)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username or email taken", shared.ErrConflict)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted user id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	return nil
}

// GetByUsername retrieves a user by exact username.
// A missing user surfaces as [shared.ErrNotFound].
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password, created_at
		FROM users
		WHERE username = ?
	`

	var user models.User
	err := r.db.QueryRow(query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", shared.ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}
