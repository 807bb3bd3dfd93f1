package repository

import (
	"database/sql"
	"time"

	"rafiq/internal/database"
	"rafiq/internal/models"
)

// ChildRepository handles child profile database operations
type ChildRepository struct {
	db *database.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *database.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

const childColumns = `id, guardian_id, first_name, last_name, date_of_birth, age_group,
	preferred_language, learning_level, interests, special_needs, is_active, voice_enabled, chat_enabled,
	daily_time_limit, enabled_subjects, voice_recording_allowed, data_retention_days,
	total_points, current_streak, longest_streak, last_activity, created_at, updated_at`

// Create inserts a new child profile
func (r *ChildRepository) Create(c *models.Child) error {
	query := `
		INSERT INTO children (id, guardian_id, first_name, last_name, date_of_birth, age_group,
			preferred_language, learning_level, interests, special_needs, is_active, voice_enabled, chat_enabled,
			daily_time_limit, enabled_subjects, voice_recording_allowed, data_retention_days,
			total_points, current_streak, longest_streak, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		c.ID, c.GuardianID, c.FirstName, c.LastName, c.DateOfBirth, string(c.AgeGroup),
		string(c.PreferredLanguage), string(c.LearningLevel), encodeJSON(c.Interests), c.SpecialNeeds,
		c.IsActive, c.VoiceEnabled, c.ChatEnabled,
		c.Controls.DailyTimeLimit, encodeJSON(c.Controls.EnabledSubjects),
		c.Controls.VoiceRecordingAllowed, c.Controls.DataRetentionDays,
		c.TotalPoints, c.CurrentStreak, c.LongestStreak, c.CreatedAt)
	return err
}

// GetByID retrieves a child by id, nil when absent
func (r *ChildRepository) GetByID(id string) (*models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE id = ?`
	return scanChild(r.db.QueryRow(query, id))
}

// ListByGuardian retrieves all children owned by a guardian
func (r *ChildRepository) ListByGuardian(guardianID string) ([]*models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE guardian_id = ? ORDER BY created_at`
	rows, err := r.db.Query(query, guardianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []*models.Child
	for rows.Next() {
		c, err := scanChildRow(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, rows.Err()
}

// Update persists profile changes to an existing child
func (r *ChildRepository) Update(c *models.Child) error {
	query := `
		UPDATE children
		SET first_name = ?, last_name = ?, date_of_birth = ?, age_group = ?,
			preferred_language = ?, learning_level = ?, interests = ?, special_needs = ?,
			is_active = ?, voice_enabled = ?, chat_enabled = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		c.FirstName, c.LastName, c.DateOfBirth, string(c.AgeGroup),
		string(c.PreferredLanguage), string(c.LearningLevel), encodeJSON(c.Interests), c.SpecialNeeds,
		c.IsActive, c.VoiceEnabled, c.ChatEnabled, time.Now().UTC(), c.ID)
	return err
}

// UpdateControls persists parental-control changes
func (r *ChildRepository) UpdateControls(c *models.Child) error {
	query := `
		UPDATE children
		SET daily_time_limit = ?, enabled_subjects = ?, voice_recording_allowed = ?,
			data_retention_days = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		c.Controls.DailyTimeLimit, encodeJSON(c.Controls.EnabledSubjects),
		c.Controls.VoiceRecordingAllowed, c.Controls.DataRetentionDays, time.Now().UTC(), c.ID)
	return err
}

// CreditProgress adds earned points and updates the streak counters.
// Sessions cascade-delete with the child, so deletion needs no extra pass.
func (r *ChildRepository) CreditProgress(id string, points, currentStreak, longestStreak int, lastActivity time.Time) error {
	query := `
		UPDATE children
		SET total_points = total_points + ?, current_streak = ?, longest_streak = ?,
			last_activity = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query, points, currentStreak, longestStreak, lastActivity, time.Now().UTC(), id)
	return err
}

// Delete removes a child profile; owned sessions cascade
func (r *ChildRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM children WHERE id = ?`, id)
	return err
}

// ListAll retrieves every active child; used by the retention purge
func (r *ChildRepository) ListAll() ([]*models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []*models.Child
	for rows.Next() {
		c, err := scanChildRow(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChild(row *sql.Row) (*models.Child, error) {
	c, err := scanChildRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func scanChildRow(row rowScanner) (*models.Child, error) {
	var c models.Child
	var ageGroup, language, level, interests, subjects string
	var lastActivity, updatedAt sql.NullTime

	err := row.Scan(&c.ID, &c.GuardianID, &c.FirstName, &c.LastName, &c.DateOfBirth, &ageGroup,
		&language, &level, &interests, &c.SpecialNeeds, &c.IsActive, &c.VoiceEnabled, &c.ChatEnabled,
		&c.Controls.DailyTimeLimit, &subjects, &c.Controls.VoiceRecordingAllowed, &c.Controls.DataRetentionDays,
		&c.TotalPoints, &c.CurrentStreak, &c.LongestStreak, &lastActivity, &c.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.AgeGroup = models.AgeGroup(ageGroup)
	c.PreferredLanguage = models.Language(language)
	c.LearningLevel = models.Difficulty(level)
	c.Interests = decodeStrings(interests)
	c.Controls.EnabledSubjects = make([]models.Subject, 0)
	for _, s := range decodeStrings(subjects) {
		c.Controls.EnabledSubjects = append(c.Controls.EnabledSubjects, models.Subject(s))
	}
	if lastActivity.Valid {
		t := lastActivity.Time
		c.LastActivity = &t
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		c.UpdatedAt = &t
	}
	return &c, nil
}
