package repository

import (
	"database/sql"
	"time"

	"rafiq/internal/database"
	"rafiq/internal/models"
)

// BadgeRepository handles badge reference data and earned-badge records
type BadgeRepository struct {
	db *database.DB
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db *database.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

const badgeColumns = `id, name, description, subject, criteria_type, criteria_value, criteria_timeframe, rarity, points`

// Upsert inserts or replaces a badge definition. The catalog is seeded
// at startup so definitions must be idempotent.
func (r *BadgeRepository) Upsert(b *models.Badge) error {
	query := `
		UPDATE badges SET name = ?, description = ?, subject = ?, criteria_type = ?,
			criteria_value = ?, criteria_timeframe = ?, rarity = ?, points = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		b.Name, b.Description, string(b.Subject), string(b.Criteria.Type),
		b.Criteria.Value, b.Criteria.Timeframe, b.Rarity, b.Points, b.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	insert := `
		INSERT INTO badges (id, name, description, subject, criteria_type, criteria_value, criteria_timeframe, rarity, points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(insert,
		b.ID, b.Name, b.Description, string(b.Subject), string(b.Criteria.Type),
		b.Criteria.Value, b.Criteria.Timeframe, b.Rarity, b.Points)
	return err
}

// GetByID retrieves a badge definition, nil when absent
func (r *BadgeRepository) GetByID(id string) (*models.Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges WHERE id = ?`
	b, err := scanBadge(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return b, err
}

// List retrieves the full badge catalog
func (r *BadgeRepository) List() ([]*models.Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []*models.Badge
	for rows.Next() {
		b, err := scanBadge(rows)
		if err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// Award records a badge earned by a child. Awarding the same badge
// twice is a no-op.
func (r *BadgeRepository) Award(childID, badgeID string, at time.Time) (bool, error) {
	has, err := r.HasBadge(childID, badgeID)
	if err != nil || has {
		return false, err
	}
	query := `INSERT INTO child_badges (child_id, badge_id, earned_at) VALUES (?, ?, ?)`
	if _, err := r.db.Exec(query, childID, badgeID, at); err != nil {
		return false, err
	}
	return true, nil
}

// HasBadge reports whether a child has already earned a badge
func (r *BadgeRepository) HasBadge(childID, badgeID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM child_badges WHERE child_id = ? AND badge_id = ?`
	err := r.db.QueryRow(query, childID, badgeID).Scan(&count)
	return count > 0, err
}

// ListEarned retrieves a child's earned badges in award order
func (r *BadgeRepository) ListEarned(childID string) ([]models.EarnedBadge, error) {
	query := `SELECT badge_id, earned_at FROM child_badges WHERE child_id = ? ORDER BY earned_at`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	earned := []models.EarnedBadge{}
	for rows.Next() {
		var e models.EarnedBadge
		if err := rows.Scan(&e.BadgeID, &e.EarnedAt); err != nil {
			return nil, err
		}
		earned = append(earned, e)
	}
	return earned, rows.Err()
}

// ListEarnedInRange retrieves badges a child earned within [from, to)
func (r *BadgeRepository) ListEarnedInRange(childID string, from, to time.Time) ([]models.EarnedBadge, error) {
	query := `
		SELECT badge_id, earned_at FROM child_badges
		WHERE child_id = ? AND earned_at >= ? AND earned_at < ?
		ORDER BY earned_at
	`
	rows, err := r.db.Query(query, childID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	earned := []models.EarnedBadge{}
	for rows.Next() {
		var e models.EarnedBadge
		if err := rows.Scan(&e.BadgeID, &e.EarnedAt); err != nil {
			return nil, err
		}
		earned = append(earned, e)
	}
	return earned, rows.Err()
}

func scanBadge(row rowScanner) (*models.Badge, error) {
	var b models.Badge
	var subject, criteriaType string

	err := row.Scan(&b.ID, &b.Name, &b.Description, &subject, &criteriaType,
		&b.Criteria.Value, &b.Criteria.Timeframe, &b.Rarity, &b.Points)
	if err != nil {
		return nil, err
	}

	b.Subject = models.Subject(subject)
	b.Criteria.Type = models.BadgeCriteriaType(criteriaType)
	return &b, nil
}
