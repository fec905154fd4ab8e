package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ UserRepository = (*UserRepositoryImpl)(nil)

// UserRepositoryImpl handles database operations for users
type UserRepositoryImpl struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

// UpsertUser inserts or refreshes a user row from identity provider claims
// and returns the stored record.
func (r *UserRepositoryImpl) UpsertUser(user User) (*User, error) {
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			profile_image_url = excluded.profile_image_url,
			updated_at = excluded.updated_at
	`, user.ID, user.Email, user.FirstName, user.LastName, user.ProfileImageURL, now, now)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return r.GetUser(user.ID)
}

// GetUser returns the user with the given ID, or nil when absent.
func (r *UserRepositoryImpl) GetUser(id string) (*User, error) {
	var user User
	err := r.db.QueryRow(`
		SELECT id, COALESCE(email, ''), first_name, last_name, profile_image_url, created_at, updated_at
		FROM users
		WHERE id = ?
	`, id).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.ProfileImageURL, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
