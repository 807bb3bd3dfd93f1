package repository

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"rafiq/internal/database"
	"rafiq/internal/models"
)

// SessionRepository handles learning-session database operations
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, child_id, lesson_id, subject, agent_id, status, start_time, end_time,
	activities_completed, current_activity, score, time_spent, engagement_level, hints_used,
	final_score, points_earned, badges_earned, last_activity_at, created_at, updated_at`

// Create inserts a new session
func (r *SessionRepository) Create(s *models.Session) error {
	query := `
		INSERT INTO sessions (id, child_id, lesson_id, subject, agent_id, status, start_time,
			activities_completed, current_activity, score, time_spent, engagement_level, hints_used,
			points_earned, badges_earned, last_activity_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		s.ID, s.ChildID, s.LessonID, string(s.Subject), s.AgentID, string(s.Status), s.StartTime,
		encodeJSON(s.Progress.ActivitiesCompleted), s.Progress.CurrentActivity, s.Progress.Score,
		s.Progress.TimeSpent, s.Progress.EngagementLevel, s.Progress.HintsUsed,
		s.PointsEarned, encodeJSON(s.BadgesEarned), s.LastActivityAt, s.CreatedAt)
	return err
}

// GetByID retrieves a session with its full message log, nil when absent
func (r *SessionRepository) GetByID(id string) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	s, err := scanSession(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	messages, err := r.Messages(id)
	if err != nil {
		return nil, err
	}
	s.Messages = messages
	return s, nil
}

// Update persists the mutable session columns. New messages must go
// through UpdateWithMessages so the write stays atomic.
func (r *SessionRepository) Update(s *models.Session) error {
	return r.update(r.db, s)
}

// UpdateWithMessages persists session changes and appends new messages
// in one transaction; the message log is append-only and the sequence
// numbers continue from what is already stored.
func (r *SessionRepository) UpdateWithMessages(s *models.Session, newMessages []models.ChatMessage) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.update(tx, s); err != nil {
		return err
	}

	startSeq := len(s.Messages) - len(newMessages)
	insert := `
		INSERT INTO chat_messages (id, session_id, seq, role, content, content_type, audio_url, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, m := range newMessages {
		_, err := tx.Exec(insert, m.ID, s.ID, startSeq+i, string(m.Role), m.Content, m.ContentType, m.AudioURL, m.Timestamp)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SessionRepository) update(db database.DBTX, s *models.Session) error {
	query := `
		UPDATE sessions
		SET status = ?, end_time = ?, activities_completed = ?, current_activity = ?, score = ?,
			time_spent = ?, engagement_level = ?, hints_used = ?, final_score = ?, points_earned = ?,
			badges_earned = ?, last_activity_at = ?, updated_at = ?
		WHERE id = ?
	`
	var endTime interface{}
	if s.EndTime != nil {
		endTime = *s.EndTime
	}
	var finalScore interface{}
	if s.FinalScore != nil {
		finalScore = *s.FinalScore
	}
	_, err := db.Exec(query,
		string(s.Status), endTime, encodeJSON(s.Progress.ActivitiesCompleted), s.Progress.CurrentActivity,
		s.Progress.Score, s.Progress.TimeSpent, s.Progress.EngagementLevel, s.Progress.HintsUsed,
		finalScore, s.PointsEarned, encodeJSON(s.BadgesEarned), s.LastActivityAt, time.Now().UTC(), s.ID)
	return err
}

// Messages retrieves a session's message log in insertion order
func (r *SessionRepository) Messages(sessionID string) ([]models.ChatMessage, error) {
	query := `
		SELECT id, session_id, role, content, content_type, audio_url, timestamp
		FROM chat_messages WHERE session_id = ? ORDER BY seq
	`
	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		var role string
		if err := rows.Scan(&m.ID, &m.SessionID, &role, &m.Content, &m.ContentType, &m.AudioURL, &m.Timestamp); err != nil {
			return nil, err
		}
		m.Role = models.MessageRole(role)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ListByChild retrieves a child's sessions, newest first
func (r *SessionRepository) ListByChild(childID string, limit int) ([]*models.Session, error) {
	builder := sq.Select(sessionColumns).From("sessions").
		Where(sq.Eq{"child_id": childID}).
		OrderBy("start_time DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return r.list(builder)
}

// ListByChildInRange retrieves a child's sessions started within [from, to)
func (r *SessionRepository) ListByChildInRange(childID string, from, to time.Time) ([]*models.Session, error) {
	builder := sq.Select(sessionColumns).From("sessions").
		Where(sq.Eq{"child_id": childID}).
		Where(sq.GtOrEq{"start_time": from}).
		Where(sq.Lt{"start_time": to}).
		OrderBy("start_time")
	return r.list(builder)
}

// ListStale retrieves non-terminal sessions idle since before the cutoff
func (r *SessionRepository) ListStale(cutoff time.Time) ([]*models.Session, error) {
	builder := sq.Select(sessionColumns).From("sessions").
		Where(sq.Eq{"status": []string{string(models.SessionActive), string(models.SessionPaused)}}).
		Where(sq.Lt{"last_activity_at": cutoff})
	return r.list(builder)
}

// CountCompletedByChild counts a child's completed sessions
func (r *SessionRepository) CountCompletedByChild(childID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM sessions WHERE child_id = ? AND status = ?`
	err := r.db.QueryRow(query, childID, string(models.SessionCompleted)).Scan(&count)
	return count, err
}

// DeleteOlderThan removes a child's sessions that ended before the
// cutoff; messages cascade. Used by the retention purge.
func (r *SessionRepository) DeleteOlderThan(childID string, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE child_id = ? AND status IN (?, ?) AND start_time < ?
	`
	result, err := r.db.Exec(query, childID,
		string(models.SessionCompleted), string(models.SessionAbandoned), cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *SessionRepository) list(builder sq.SelectBuilder) ([]*models.Session, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func scanSession(row rowScanner) (*models.Session, error) {
	var s models.Session
	var subject, status, activitiesCompleted, badgesEarned string
	var endTime, updatedAt sql.NullTime
	var finalScore sql.NullInt64

	err := row.Scan(&s.ID, &s.ChildID, &s.LessonID, &subject, &s.AgentID, &status, &s.StartTime, &endTime,
		&activitiesCompleted, &s.Progress.CurrentActivity, &s.Progress.Score, &s.Progress.TimeSpent,
		&s.Progress.EngagementLevel, &s.Progress.HintsUsed, &finalScore, &s.PointsEarned,
		&badgesEarned, &s.LastActivityAt, &s.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	s.Subject = models.Subject(subject)
	s.Status = models.SessionStatus(status)
	s.Progress.ActivitiesCompleted = decodeStrings(activitiesCompleted)
	s.BadgesEarned = decodeStrings(badgesEarned)
	s.Messages = []models.ChatMessage{}
	if endTime.Valid {
		t := endTime.Time
		s.EndTime = &t
	}
	if finalScore.Valid {
		n := int(finalScore.Int64)
		s.FinalScore = &n
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		s.UpdatedAt = &t
	}
	return &s, nil
}
