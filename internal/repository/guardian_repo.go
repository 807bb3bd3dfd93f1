package repository

import (
	"database/sql"
	"time"

	"rafiq/internal/database"
	"rafiq/internal/models"
)

// GuardianRepository handles guardian database operations
type GuardianRepository struct {
	db *database.DB
}

// NewGuardianRepository creates a new guardian repository
func NewGuardianRepository(db *database.DB) *GuardianRepository {
	return &GuardianRepository{db: db}
}

const guardianColumns = `id, email, password_hash, first_name, last_name, preferred_language,
	timezone, is_email_verified, is_active, oauth_provider, oauth_subject, last_login, created_at, updated_at`

// Create inserts a new guardian
func (r *GuardianRepository) Create(g *models.Guardian) error {
	query := `
		INSERT INTO guardians (id, email, password_hash, first_name, last_name, preferred_language,
			timezone, is_email_verified, is_active, oauth_provider, oauth_subject, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		g.ID, g.Email, g.PasswordHash, g.FirstName, g.LastName, string(g.PreferredLanguage),
		g.Timezone, g.IsEmailVerified, g.IsActive, g.OAuthProvider, g.OAuthSubject, g.CreatedAt)
	return err
}

// GetByID retrieves a guardian by id, nil when absent
func (r *GuardianRepository) GetByID(id string) (*models.Guardian, error) {
	query := `SELECT ` + guardianColumns + ` FROM guardians WHERE id = ?`
	return r.scanGuardian(r.db.QueryRow(query, id))
}

// GetByEmail retrieves a guardian by email, nil when absent
func (r *GuardianRepository) GetByEmail(email string) (*models.Guardian, error) {
	query := `SELECT ` + guardianColumns + ` FROM guardians WHERE email = ?`
	return r.scanGuardian(r.db.QueryRow(query, email))
}

// GetByOAuth retrieves a guardian linked to an OAuth identity, nil when absent
func (r *GuardianRepository) GetByOAuth(provider, subject string) (*models.Guardian, error) {
	query := `SELECT ` + guardianColumns + ` FROM guardians WHERE oauth_provider = ? AND oauth_subject = ?`
	return r.scanGuardian(r.db.QueryRow(query, provider, subject))
}

// LinkOAuth attaches an OAuth identity to an existing guardian
func (r *GuardianRepository) LinkOAuth(id, provider, subject string) error {
	query := `UPDATE guardians SET oauth_provider = ?, oauth_subject = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, provider, subject, time.Now().UTC(), id)
	return err
}

// UpdateProfile applies profile changes to an existing guardian
func (r *GuardianRepository) UpdateProfile(g *models.Guardian) error {
	query := `
		UPDATE guardians
		SET first_name = ?, last_name = ?, preferred_language = ?, timezone = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		g.FirstName, g.LastName, string(g.PreferredLanguage), g.Timezone, time.Now().UTC(), g.ID)
	return err
}

// UpdateLastLogin records the most recent login time
func (r *GuardianRepository) UpdateLastLogin(id string, at time.Time) error {
	query := `UPDATE guardians SET last_login = ? WHERE id = ?`
	_, err := r.db.Exec(query, at, id)
	return err
}

// SetEmailVerifyToken stores the pending verification token
func (r *GuardianRepository) SetEmailVerifyToken(id, token string) error {
	query := `UPDATE guardians SET email_verify_token = ? WHERE id = ?`
	_, err := r.db.Exec(query, token, id)
	return err
}

// VerifyEmailByToken marks the matching guardian's email verified and
// consumes the token. Returns false when no guardian holds the token.
func (r *GuardianRepository) VerifyEmailByToken(token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	query := `
		UPDATE guardians
		SET is_email_verified = ?, email_verify_token = '', updated_at = ?
		WHERE email_verify_token = ?
	`
	result, err := r.db.Exec(query, true, time.Now().UTC(), token)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Deactivate soft-deletes a guardian; accounts are never hard-deleted
func (r *GuardianRepository) Deactivate(id string) error {
	query := `UPDATE guardians SET is_active = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, false, time.Now().UTC(), id)
	return err
}

func (r *GuardianRepository) scanGuardian(row *sql.Row) (*models.Guardian, error) {
	var g models.Guardian
	var language string
	var lastLogin, updatedAt sql.NullTime

	err := row.Scan(&g.ID, &g.Email, &g.PasswordHash, &g.FirstName, &g.LastName, &language,
		&g.Timezone, &g.IsEmailVerified, &g.IsActive, &g.OAuthProvider, &g.OAuthSubject,
		&lastLogin, &g.CreatedAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	g.PreferredLanguage = models.Language(language)
	if lastLogin.Valid {
		t := lastLogin.Time
		g.LastLogin = &t
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		g.UpdatedAt = &t
	}
	return &g, nil
}
