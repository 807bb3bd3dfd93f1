package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"rafiq/internal/agent"
	"rafiq/internal/models"
	"rafiq/internal/repository"
	"rafiq/internal/schema"
	"rafiq/internal/session"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrChildInactive     = errors.New("child profile is inactive")
	ErrChatDisabled      = errors.New("chat is disabled for this child")
	ErrSubjectDisabled   = errors.New("subject is not enabled for this child")
	ErrVoiceNotAllowed   = errors.New("voice recording is not allowed for this child")
	ErrUnknownAgent      = errors.New("unknown agent")
	ErrAgentMismatch     = errors.New("agent does not teach this subject")
	ErrDailyLimitReached = errors.New("daily time limit reached")
)

// historyTurns limits how much conversation context is sent to the agent
const historyTurns = 10

// SessionService drives the learning-session lifecycle
type SessionService struct {
	sessionRepo   *repository.SessionRepository
	childRepo     *repository.ChildRepository
	lessonRepo    *repository.LessonRepository
	tutor         agent.Tutor
	locks         *session.Locks
	assessments   *AssessmentService
	badges        *BadgeService
	budgetMinutes int
	abandonAfter  time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo *repository.SessionRepository,
	childRepo *repository.ChildRepository,
	lessonRepo *repository.LessonRepository,
	tutor agent.Tutor,
	assessments *AssessmentService,
	badges *BadgeService,
	budgetMinutes int,
	abandonAfter time.Duration,
) *SessionService {
	return &SessionService{
		sessionRepo:   sessionRepo,
		childRepo:     childRepo,
		lessonRepo:    lessonRepo,
		tutor:         tutor,
		locks:         session.NewLocks(),
		assessments:   assessments,
		badges:        badges,
		budgetMinutes: budgetMinutes,
		abandonAfter:  abandonAfter,
	}
}

// Start begins a new learning session after checking every parental
// gate: ownership, active profile, chat enabled, subject enabled, and
// the daily time limit.
func (s *SessionService) Start(guardianID string, req schema.StartSessionRequest) (*models.Session, error) {
	start, err := req.Validate()
	if err != nil {
		return nil, err
	}

	child, err := s.ownedChild(guardianID, start.ChildID)
	if err != nil {
		return nil, err
	}
	if !child.IsActive {
		return nil, ErrChildInactive
	}
	if !child.ChatEnabled {
		return nil, ErrChatDisabled
	}

	lesson, err := s.lessonRepo.GetByID(start.LessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up lesson: %w", err)
	}
	if lesson == nil || !lesson.IsPublished {
		return nil, ErrLessonNotFound
	}
	if !child.SubjectEnabled(lesson.Subject) {
		return nil, ErrSubjectDisabled
	}

	persona := agent.PersonaByID(start.AgentID)
	if persona == nil {
		return nil, ErrUnknownAgent
	}
	if persona.Subject != lesson.Subject {
		return nil, ErrAgentMismatch
	}

	now := time.Now().UTC()
	spent, err := s.minutesSpentToday(child.ID, now)
	if err != nil {
		return nil, err
	}
	if spent >= child.Controls.DailyTimeLimit {
		return nil, ErrDailyLimitReached
	}

	sess := session.New(uuid.NewString(), child.ID, lesson, persona.ID, now)
	if err := s.sessionRepo.Create(sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Printf("Session %s started: child=%s lesson=%s agent=%s", sess.ID, child.ID, lesson.ID, persona.ID)
	return sess, nil
}

// Get retrieves an owned session with its message log
func (s *SessionService) Get(guardianID, sessionID string) (*models.Session, error) {
	sess, _, err := s.ownedSession(guardianID, sessionID)
	return sess, err
}

// History lists an owned child's sessions, newest first. A limit of
// zero returns the full history.
func (s *SessionService) History(guardianID, childID string, limit int) ([]*models.Session, error) {
	if _, err := s.ownedChild(guardianID, childID); err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.ListByChild(childID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// SendMessage appends one child message and the agent's reply as a
// single exchange. The agent is consulted before anything is mutated,
// so an unavailable agent leaves the session exactly as it was.
func (s *SessionService) SendMessage(ctx context.Context, guardianID, sessionID string, req schema.SendMessageRequest) (*models.Session, *agent.Reply, error) {
	msg, err := req.Validate()
	if err != nil {
		return nil, nil, err
	}

	release := s.locks.Acquire(sessionID)
	defer release()

	sess, child, err := s.ownedSession(guardianID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess.Status != models.SessionActive {
		return nil, nil, &session.StateError{Action: "append message to", Status: sess.Status, Required: models.SessionActive}
	}
	if msg.ContentType == "audio" && !child.Controls.VoiceRecordingAllowed {
		return nil, nil, ErrVoiceNotAllowed
	}

	reply, err := s.tutor.Reply(ctx, agent.ReplyRequest{
		AgentID:   sess.AgentID,
		SessionID: sess.ID,
		ChildName: child.FirstName,
		Language:  string(child.PreferredLanguage),
		Content:   msg.Content,
		History:   recentTurns(sess.Messages, historyTurns),
	})
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	childMsg := models.ChatMessage{
		ID:          uuid.NewString(),
		SessionID:   sess.ID,
		Role:        models.RoleChild,
		Content:     msg.Content,
		ContentType: msg.ContentType,
		AudioURL:    msg.AudioRef,
		Timestamp:   now,
	}
	agentMsg := models.ChatMessage{
		ID:          uuid.NewString(),
		SessionID:   sess.ID,
		Role:        models.RoleAgent,
		Content:     reply.Content,
		ContentType: reply.ContentType,
		Timestamp:   now,
	}

	if err := session.AppendExchange(sess, childMsg, agentMsg, now); err != nil {
		return nil, nil, err
	}
	if err := s.sessionRepo.UpdateWithMessages(sess, []models.ChatMessage{childMsg, agentMsg}); err != nil {
		return nil, nil, fmt.Errorf("failed to persist exchange: %w", err)
	}
	return sess, reply, nil
}

// Pause suspends an active session
func (s *SessionService) Pause(guardianID, sessionID string) (*models.Session, error) {
	return s.transition(guardianID, sessionID, session.Pause)
}

// Resume reactivates a paused session
func (s *SessionService) Resume(guardianID, sessionID string) (*models.Session, error) {
	return s.transition(guardianID, sessionID, session.Resume)
}

// End completes an active session: the final score is fixed, points
// are credited to the child, badges are evaluated and an assessment is
// generated.
func (s *SessionService) End(guardianID, sessionID string) (*models.Session, *models.AssessmentResult, error) {
	release := s.locks.Acquire(sessionID)
	defer release()

	sess, child, err := s.ownedSession(guardianID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	final, err := session.Complete(sess, now)
	if err != nil {
		return nil, nil, err
	}

	completedBefore, err := s.sessionRepo.CountCompletedByChild(child.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	current, longest := nextStreak(child, now)
	awarded, bonus := s.badges.EvaluateOnCompletion(child, sess, completedBefore+1, current, now)
	sess.BadgesEarned = awarded

	if err := s.sessionRepo.Update(sess); err != nil {
		return nil, nil, fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.childRepo.CreditProgress(child.ID, final+bonus, current, longest, now); err != nil {
		return nil, nil, fmt.Errorf("failed to credit progress: %w", err)
	}

	assessment, err := s.assessments.GenerateForSession(sess)
	if err != nil {
		// The session completed; a missing assessment is recoverable
		log.Printf("Failed to generate assessment for session %s: %v", sess.ID, err)
	}

	log.Printf("Session %s completed: child=%s score=%d points=%d badges=%d", sess.ID, child.ID, final, final+bonus, len(awarded))
	return sess, assessment, nil
}

// ReapAbandoned terminates sessions idle longer than the abandonment
// window. Run periodically in the background.
func (s *SessionService) ReapAbandoned(now time.Time) (int, error) {
	stale, err := s.sessionRepo.ListStale(now.Add(-s.abandonAfter))
	if err != nil {
		return 0, fmt.Errorf("failed to list stale sessions: %w", err)
	}

	reaped := 0
	for _, candidate := range stale {
		release := s.locks.Acquire(candidate.ID)

		// Reload under the lock; the session may have moved on
		sess, err := s.sessionRepo.GetByID(candidate.ID)
		if err != nil || sess == nil || sess.Status.IsTerminal() || sess.LastActivityAt.After(now.Add(-s.abandonAfter)) {
			release()
			continue
		}
		if err := session.Abandon(sess, now); err != nil {
			release()
			continue
		}
		if err := s.sessionRepo.Update(sess); err != nil {
			log.Printf("Failed to persist abandoned session %s: %v", sess.ID, err)
			release()
			continue
		}
		release()
		reaped++
	}

	if reaped > 0 {
		log.Printf("Reaped %d abandoned sessions", reaped)
	}
	return reaped, nil
}

// ProgressPercent is the display progress of a session against the
// configured time budget
func (s *SessionService) ProgressPercent(sess *models.Session) float64 {
	return session.ProgressPercent(sess, time.Now().UTC(), s.budgetMinutes)
}

func (s *SessionService) transition(guardianID, sessionID string, fn func(*models.Session, time.Time) error) (*models.Session, error) {
	release := s.locks.Acquire(sessionID)
	defer release()

	sess, _, err := s.ownedSession(guardianID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(sess, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Update(sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

// ownedSession loads a session and proves the guardian owns its child.
// Sessions of other families are indistinguishable from missing ones.
func (s *SessionService) ownedSession(guardianID, sessionID string) (*models.Session, *models.Child, error) {
	sess, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if sess == nil {
		return nil, nil, ErrSessionNotFound
	}
	child, err := s.childRepo.GetByID(sess.ChildID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up child: %w", err)
	}
	if child == nil || child.GuardianID != guardianID {
		return nil, nil, ErrSessionNotFound
	}
	return sess, child, nil
}

func (s *SessionService) ownedChild(guardianID, childID string) (*models.Child, error) {
	child, err := s.childRepo.GetByID(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up child: %w", err)
	}
	if child == nil || child.GuardianID != guardianID {
		return nil, ErrChildNotFound
	}
	return child, nil
}

// minutesSpentToday sums learning time across the child's sessions
// since local midnight UTC
func (s *SessionService) minutesSpentToday(childID string, now time.Time) (int, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sessions, err := s.sessionRepo.ListByChildInRange(childID, dayStart, now.Add(time.Minute))
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	total := 0
	for _, sess := range sessions {
		total += sess.Progress.TimeSpent
	}
	return total, nil
}

// nextStreak computes the child's streak counters for an activity at
// now: same day keeps the streak, the next day extends it, any gap
// resets it to one.
func nextStreak(child *models.Child, now time.Time) (current, longest int) {
	current = 1
	if child.LastActivity != nil {
		lastDay := child.LastActivity.UTC().Truncate(24 * time.Hour)
		today := now.Truncate(24 * time.Hour)
		switch today.Sub(lastDay) {
		case 0:
			current = child.CurrentStreak
			if current == 0 {
				current = 1
			}
		case 24 * time.Hour:
			current = child.CurrentStreak + 1
		}
	}
	longest = child.LongestStreak
	if current > longest {
		longest = current
	}
	return current, longest
}

func recentTurns(messages []models.ChatMessage, limit int) []agent.Turn {
	start := len(messages) - limit
	if start < 0 {
		start = 0
	}
	turns := make([]agent.Turn, 0, len(messages)-start)
	for _, m := range messages[start:] {
		turns = append(turns, agent.Turn{Role: string(m.Role), Content: m.Content})
	}
	return turns
}
