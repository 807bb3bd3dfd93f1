package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"rafiq/internal/database"
	"rafiq/internal/models"
)

// AssessmentRepository handles assessment database operations
type AssessmentRepository struct {
	db *database.DB
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(db *database.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

const assessmentColumns = `id, session_id, child_id, subject, skill_scores, overall_score,
	strengths, areas_for_improvement, recommendations, mastered_skills, struggling_skills,
	assessment_method, created_at`

// Create inserts an assessment result. Results are immutable once written.
func (r *AssessmentRepository) Create(a *models.AssessmentResult) error {
	query := `
		INSERT INTO assessments (id, session_id, child_id, subject, skill_scores, overall_score,
			strengths, areas_for_improvement, recommendations, mastered_skills, struggling_skills,
			assessment_method, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		a.ID, a.SessionID, a.ChildID, string(a.Subject), encodeJSON(a.SkillScores), a.OverallScore,
		encodeJSON(a.Strengths), encodeJSON(a.AreasForImprovement), encodeJSON(a.Recommendations),
		encodeJSON(a.MasteredSkills), encodeJSON(a.StrugglingSkills),
		string(a.AssessmentMethod), a.CreatedAt)
	return err
}

// GetBySession retrieves the assessment for a session, nil when absent
func (r *AssessmentRepository) GetBySession(sessionID string) (*models.AssessmentResult, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE session_id = ?`
	a, err := scanAssessment(r.db.QueryRow(query, sessionID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

// ListByChild retrieves a child's assessments, newest first
func (r *AssessmentRepository) ListByChild(childID string, limit int) ([]*models.AssessmentResult, error) {
	builder := sq.Select(assessmentColumns).From("assessments").
		Where(sq.Eq{"child_id": childID}).
		OrderBy("created_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return r.list(builder)
}

// ListByChildInRange retrieves a child's assessments created within [from, to)
func (r *AssessmentRepository) ListByChildInRange(childID string, from, to time.Time) ([]*models.AssessmentResult, error) {
	builder := sq.Select(assessmentColumns).From("assessments").
		Where(sq.Eq{"child_id": childID}).
		Where(sq.GtOrEq{"created_at": from}).
		Where(sq.Lt{"created_at": to}).
		OrderBy("created_at")
	return r.list(builder)
}

// DeleteOlderThan removes a child's assessments created before the
// cutoff. Used by the retention purge.
func (r *AssessmentRepository) DeleteOlderThan(childID string, cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM assessments WHERE child_id = ? AND created_at < ?`, childID, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *AssessmentRepository) list(builder sq.SelectBuilder) ([]*models.AssessmentResult, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []*models.AssessmentResult
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

func scanAssessment(row rowScanner) (*models.AssessmentResult, error) {
	var a models.AssessmentResult
	var subject, method string
	var skillScores, strengths, areas, recommendations, mastered, struggling string

	err := row.Scan(&a.ID, &a.SessionID, &a.ChildID, &subject, &skillScores, &a.OverallScore,
		&strengths, &areas, &recommendations, &mastered, &struggling, &method, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.Subject = models.Subject(subject)
	a.AssessmentMethod = models.AssessmentMethod(method)
	a.SkillScores = map[string]int{}
	if err := json.Unmarshal([]byte(skillScores), &a.SkillScores); err != nil {
		a.SkillScores = map[string]int{}
	}
	a.Strengths = decodeStrings(strengths)
	a.AreasForImprovement = decodeStrings(areas)
	a.Recommendations = decodeStrings(recommendations)
	a.MasteredSkills = decodeStrings(mastered)
	a.StrugglingSkills = decodeStrings(struggling)
	return &a, nil
}
