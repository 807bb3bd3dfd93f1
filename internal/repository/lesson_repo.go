package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"rafiq/internal/database"
	"rafiq/internal/models"
)

// LessonRepository handles lesson catalog database operations
type LessonRepository struct {
	db *database.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *database.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

const lessonColumns = `id, title, description, subject, age_group, difficulty, activities,
	estimated_duration, objectives, keywords, prerequisites, unlocks, is_published, tags, created_at, updated_at`

// Create inserts a new lesson
func (r *LessonRepository) Create(l *models.Lesson) error {
	query := `
		INSERT INTO lessons (id, title, description, subject, age_group, difficulty, activities,
			estimated_duration, objectives, keywords, prerequisites, unlocks, is_published, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		l.ID, l.Title, l.Description, string(l.Subject), string(l.AgeGroup), string(l.Difficulty),
		encodeJSON(l.Activities), l.EstimatedDuration, encodeJSON(l.Objectives), encodeJSON(l.Keywords),
		encodeJSON(l.Prerequisites), encodeJSON(l.Unlocks), l.IsPublished, encodeJSON(l.Tags), l.CreatedAt)
	return err
}

// GetByID retrieves a lesson by id, nil when absent
func (r *LessonRepository) GetByID(id string) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = ?`
	l, err := scanLesson(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return l, err
}

// LessonFilter narrows the catalog listing
type LessonFilter struct {
	Subject       string
	AgeGroup      string
	PublishedOnly bool
}

// List retrieves lessons matching the filter
func (r *LessonRepository) List(filter LessonFilter) ([]*models.Lesson, error) {
	builder := sq.Select(lessonColumns).From("lessons").OrderBy("created_at")
	if filter.Subject != "" {
		builder = builder.Where(sq.Eq{"subject": filter.Subject})
	}
	if filter.AgeGroup != "" {
		builder = builder.Where(sq.Eq{"age_group": filter.AgeGroup})
	}
	if filter.PublishedOnly {
		builder = builder.Where(sq.Eq{"is_published": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// SetPublished flips the publish flag
func (r *LessonRepository) SetPublished(id string, published bool) error {
	query := `UPDATE lessons SET is_published = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, published, time.Now().UTC(), id)
	return err
}

func scanLesson(row rowScanner) (*models.Lesson, error) {
	var l models.Lesson
	var subject, ageGroup, difficulty string
	var activities, objectives, keywords, prerequisites, unlocks, tags string
	var updatedAt sql.NullTime

	err := row.Scan(&l.ID, &l.Title, &l.Description, &subject, &ageGroup, &difficulty, &activities,
		&l.EstimatedDuration, &objectives, &keywords, &prerequisites, &unlocks, &l.IsPublished, &tags,
		&l.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	l.Subject = models.Subject(subject)
	l.AgeGroup = models.AgeGroup(ageGroup)
	l.Difficulty = models.Difficulty(difficulty)
	if err := json.Unmarshal([]byte(activities), &l.Activities); err != nil {
		l.Activities = []models.Activity{}
	}
	l.Objectives = decodeStrings(objectives)
	l.Keywords = decodeStrings(keywords)
	l.Prerequisites = decodeStrings(prerequisites)
	l.Unlocks = decodeStrings(unlocks)
	l.Tags = decodeStrings(tags)
	if updatedAt.Valid {
		t := updatedAt.Time
		l.UpdatedAt = &t
	}
	return &l, nil
}
