package repositories

import (
	"database/sql"
	"errors"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmail returns the user plus their password hash for login checks.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, email, password_hash,
		       COALESCE(first_name,''), COALESCE(last_name,''),
		       COALESCE(role,''), COALESCE(team,''), COALESCE(title,'')
		FROM users
		WHERE email = ?
		LIMIT 1
	`, email).Scan(&u.ID, &u.Email, &hash, &u.FirstName, &u.LastName, &u.Role, &u.Team, &u.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, "", err
	}
	return u, hash, nil
}

// GetByID returns a user without credential fields.
func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, email,
		       COALESCE(first_name,''), COALESCE(last_name,''),
		       COALESCE(role,''), COALESCE(team,''), COALESCE(title,'')
		FROM users
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.Team, &u.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, err
	}
	return u, nil
}
