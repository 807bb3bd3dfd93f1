package session

import (
	"fmt"
	"time"

	"rafiq/internal/models"
)

const (
	// ExchangeReward is the score added for each completed exchange
	ExchangeReward = 5

	// MaxScore caps the accumulated progress score
	MaxScore = 100
)

// StateError reports an attempted action that is illegal in the
// session's current state. Illegal actions never silently no-op.
type StateError struct {
	Action   string
	Status   models.SessionStatus
	Required models.SessionStatus
}

func (e *StateError) Error() string {
	if e.Required != "" {
		return fmt.Sprintf("cannot %s session in state %q: state %q required", e.Action, e.Status, e.Required)
	}
	return fmt.Sprintf("cannot %s session in state %q", e.Action, e.Status)
}

// New creates a session in its initial state: active, zero score,
// no time spent, empty message log
func New(id, childID string, lesson *models.Lesson, agentID string, now time.Time) *models.Session {
	return &models.Session{
		ID:       id,
		ChildID:  childID,
		LessonID: lesson.ID,
		Subject:  lesson.Subject,
		AgentID:  agentID,
		Status:   models.SessionActive,
		Progress: models.SessionProgress{
			ActivitiesCompleted: []string{},
		},
		Messages:       []models.ChatMessage{},
		BadgesEarned:   []string{},
		StartTime:      now,
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// Pause flips an active session to paused. Time spent while active is
// accrued; paused time never counts.
func Pause(s *models.Session, now time.Time) error {
	if s.Status != models.SessionActive {
		return &StateError{Action: "pause", Status: s.Status, Required: models.SessionActive}
	}
	accrueTime(s, now)
	s.Status = models.SessionPaused
	touch(s, now)
	return nil
}

// Resume flips a paused session back to active
func Resume(s *models.Session, now time.Time) error {
	if s.Status != models.SessionPaused {
		return &StateError{Action: "resume", Status: s.Status, Required: models.SessionPaused}
	}
	s.Status = models.SessionActive
	s.LastActivityAt = now
	touch(s, now)
	return nil
}

// Complete ends an active session: the final score is fixed from the
// accumulated progress score, the end time is set, and the points to
// credit are returned. Completed is terminal.
func Complete(s *models.Session, now time.Time) (int, error) {
	if s.Status != models.SessionActive {
		return 0, &StateError{Action: "complete", Status: s.Status, Required: models.SessionActive}
	}
	accrueTime(s, now)
	final := s.Progress.Score
	s.Status = models.SessionCompleted
	s.FinalScore = &final
	s.EndTime = &now
	s.PointsEarned = final
	touch(s, now)
	return final, nil
}

// Abandon terminates an active or paused session without finalizing a
// score. Triggered externally, e.g. by the inactivity reaper.
func Abandon(s *models.Session, now time.Time) error {
	if s.Status.IsTerminal() {
		return &StateError{Action: "abandon", Status: s.Status}
	}
	if s.Status == models.SessionActive {
		accrueTime(s, now)
	}
	s.Status = models.SessionAbandoned
	s.EndTime = &now
	touch(s, now)
	return nil
}

// AppendExchange appends one child message and its agent reply as a
// single unit. Only valid while the session is active; each exchange
// adds the fixed reward to the progress score, capped at MaxScore.
func AppendExchange(s *models.Session, childMsg, agentMsg models.ChatMessage, now time.Time) error {
	if s.Status != models.SessionActive {
		return &StateError{Action: "append message to", Status: s.Status, Required: models.SessionActive}
	}
	accrueTime(s, now)
	s.Messages = append(s.Messages, childMsg, agentMsg)
	s.Progress.Score += ExchangeReward
	if s.Progress.Score > MaxScore {
		s.Progress.Score = MaxScore
	}
	touch(s, now)
	return nil
}

// ProgressPercent is the derived display value: elapsed time against
// the session budget, capped at 100. Never authoritative state.
func ProgressPercent(s *models.Session, now time.Time, budgetMinutes int) float64 {
	if budgetMinutes <= 0 {
		return 0
	}
	elapsed := float64(s.Progress.TimeSpent)
	if s.Status == models.SessionActive {
		elapsed += now.Sub(s.LastActivityAt).Minutes()
	}
	ratio := elapsed / float64(budgetMinutes)
	if ratio > 1 {
		ratio = 1
	}
	return ratio * 100
}

// accrueTime adds wall-clock minutes since the last activity to the
// session's time spent. Call only while the session is active.
func accrueTime(s *models.Session, now time.Time) {
	if minutes := int(now.Sub(s.LastActivityAt).Minutes()); minutes > 0 {
		s.Progress.TimeSpent += minutes
	}
	s.LastActivityAt = now
}

func touch(s *models.Session, now time.Time) {
	t := now
	s.UpdatedAt = &t
}
