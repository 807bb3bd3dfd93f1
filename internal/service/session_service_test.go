package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rafiq/internal/models"
	"rafiq/internal/schema"
	"rafiq/internal/session"
)

func TestSessionFlow(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "flow@example.com")
	c := env.createChild(t, g.ID)
	l := env.createLesson(t, "arabic")
	ctx := context.Background()

	sess, err := env.sessions.Start(g.ID, schema.StartSessionRequest{
		ChildID: c.ID, LessonID: l.ID, AgentID: "arabic",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionActive, sess.Status)
	assert.Equal(t, models.SubjectArabic, sess.Subject)

	sess, reply, err := env.sessions.SendMessage(ctx, g.ID, sess.ID, schema.SendMessageRequest{Content: "مرحبا"})
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "مرحبا")
	require.Len(t, sess.Messages, 2)
	assert.Equal(t, models.RoleChild, sess.Messages[0].Role)
	assert.Equal(t, models.RoleAgent, sess.Messages[1].Role)
	assert.Equal(t, session.ExchangeReward, sess.Progress.Score)

	sess, err = env.sessions.Pause(g.ID, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionPaused, sess.Status)

	sess, err = env.sessions.Resume(g.ID, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionActive, sess.Status)

	sess, assessment, err := env.sessions.End(g.ID, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, sess.Status)
	require.NotNil(t, sess.FinalScore)
	assert.Equal(t, session.ExchangeReward, *sess.FinalScore)
	assert.Contains(t, sess.BadgesEarned, "first-steps")

	require.NotNil(t, assessment)
	assert.Equal(t, sess.ID, assessment.SessionID)
	assert.Equal(t, session.ExchangeReward, assessment.OverallScore)
	// the arabic persona's focus areas become the assessed skills
	assert.Contains(t, assessment.SkillScores, "letters")

	// points include the first-steps badge bonus
	updated, err := env.family.GetChild(g.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ExchangeReward+10, updated.TotalPoints)
	assert.Equal(t, 1, updated.CurrentStreak)
	require.NotNil(t, updated.LastActivity)
}

func TestStartParentalGates(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "gates@example.com")
	other := env.registerGuardian(t, "other@example.com")
	c := env.createChild(t, g.ID)
	l := env.createLesson(t, "arabic")

	start := schema.StartSessionRequest{ChildID: c.ID, LessonID: l.ID, AgentID: "arabic"}

	_, err := env.sessions.Start(other.ID, start)
	assert.ErrorIs(t, err, ErrChildNotFound)

	_, err = env.sessions.Start(g.ID, schema.StartSessionRequest{ChildID: c.ID, LessonID: l.ID, AgentID: "math"})
	assert.ErrorIs(t, err, ErrUnknownAgent)

	// the english persona does not teach an arabic lesson
	_, err = env.sessions.Start(g.ID, schema.StartSessionRequest{ChildID: c.ID, LessonID: l.ID, AgentID: "english"})
	assert.ErrorIs(t, err, ErrAgentMismatch)

	draft := env.createLesson(t, "arabic")
	_, err = env.lessons.PublishLesson(draft.ID, false)
	require.NoError(t, err)
	_, err = env.sessions.Start(g.ID, schema.StartSessionRequest{ChildID: c.ID, LessonID: draft.ID, AgentID: "arabic"})
	assert.ErrorIs(t, err, ErrLessonNotFound)

	// islamic is not in the child's enabled subjects by default
	islamic := env.createLesson(t, "islamic")
	_, err = env.sessions.Start(g.ID, schema.StartSessionRequest{ChildID: c.ID, LessonID: islamic.ID, AgentID: "islamic"})
	assert.ErrorIs(t, err, ErrSubjectDisabled)

	chatOff := false
	_, err = env.family.UpdateChild(g.ID, c.ID, schema.UpdateChildRequest{ChatEnabled: &chatOff})
	require.NoError(t, err)
	_, err = env.sessions.Start(g.ID, start)
	assert.ErrorIs(t, err, ErrChatDisabled)

	chatOn := true
	inactive := false
	_, err = env.family.UpdateChild(g.ID, c.ID, schema.UpdateChildRequest{ChatEnabled: &chatOn, IsActive: &inactive})
	require.NoError(t, err)
	_, err = env.sessions.Start(g.ID, start)
	assert.ErrorIs(t, err, ErrChildInactive)
}

func TestStartDailyTimeLimit(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "limit@example.com")
	c := env.createChild(t, g.ID)
	l := env.createLesson(t, "arabic")

	limit := 10
	_, err := env.family.UpdateControls(g.ID, c.ID, schema.UpdateControlsRequest{DailyTimeLimit: &limit})
	require.NoError(t, err)

	// an earlier session today already consumed the full budget
	now := time.Now().UTC()
	spent := session.New("spent", c.ID, l, "arabic", now.Add(-time.Minute))
	spent.Progress.TimeSpent = 15
	require.NoError(t, env.sessionRepo.Create(spent))

	_, err = env.sessions.Start(g.ID, schema.StartSessionRequest{ChildID: c.ID, LessonID: l.ID, AgentID: "arabic"})
	assert.ErrorIs(t, err, ErrDailyLimitReached)
}

func TestSendMessageGates(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "msg@example.com")
	other := env.registerGuardian(t, "msg-other@example.com")
	c := env.createChild(t, g.ID)
	l := env.createLesson(t, "arabic")
	ctx := context.Background()

	sess, err := env.sessions.Start(g.ID, schema.StartSessionRequest{ChildID: c.ID, LessonID: l.ID, AgentID: "arabic"})
	require.NoError(t, err)

	// another family's session is indistinguishable from a missing one
	_, _, err = env.sessions.SendMessage(ctx, other.ID, sess.ID, schema.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// audio requires the voice-recording control
	_, _, err = env.sessions.SendMessage(ctx, g.ID, sess.ID, schema.SendMessageRequest{
		Content: "hi", ContentType: "audio", AudioRef: "recordings/abc",
	})
	assert.ErrorIs(t, err, ErrVoiceNotAllowed)

	_, err = env.sessions.Pause(g.ID, sess.ID)
	require.NoError(t, err)

	_, _, err = env.sessions.SendMessage(ctx, g.ID, sess.ID, schema.SendMessageRequest{Content: "hi"})
	var serr *session.StateError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, models.SessionPaused, serr.Status)

	// the failed sends left nothing behind
	got, err := env.sessions.Get(g.ID, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)
}

func TestSessionHistory(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "history@example.com")
	other := env.registerGuardian(t, "history-other@example.com")
	c := env.createChild(t, g.ID)
	l := env.createLesson(t, "arabic")

	now := time.Now().UTC()
	older := session.New("older", c.ID, l, "arabic", now.Add(-time.Hour))
	require.NoError(t, env.sessionRepo.Create(older))
	newer := session.New("newer", c.ID, l, "arabic", now)
	require.NoError(t, env.sessionRepo.Create(newer))

	sessions, err := env.sessions.History(g.ID, c.ID, 50)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "newer", sessions[0].ID)
	assert.Equal(t, "older", sessions[1].ID)

	sessions, err = env.sessions.History(g.ID, c.ID, 1)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "newer", sessions[0].ID)

	_, err = env.sessions.History(other.ID, c.ID, 50)
	assert.ErrorIs(t, err, ErrChildNotFound)
}

func TestEndTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "end@example.com")
	c := env.createChild(t, g.ID)
	l := env.createLesson(t, "arabic")

	sess, err := env.sessions.Start(g.ID, schema.StartSessionRequest{ChildID: c.ID, LessonID: l.ID, AgentID: "arabic"})
	require.NoError(t, err)

	_, _, err = env.sessions.End(g.ID, sess.ID)
	require.NoError(t, err)

	_, _, err = env.sessions.End(g.ID, sess.ID)
	var serr *session.StateError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, models.SessionCompleted, serr.Status)
}

func TestReapAbandoned(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "reap@example.com")
	c := env.createChild(t, g.ID)
	l := env.createLesson(t, "arabic")

	now := time.Now().UTC()
	idle := session.New("idle", c.ID, l, "arabic", now.Add(-2*time.Hour))
	require.NoError(t, env.sessionRepo.Create(idle))

	fresh, err := env.sessions.Start(g.ID, schema.StartSessionRequest{ChildID: c.ID, LessonID: l.ID, AgentID: "arabic"})
	require.NoError(t, err)

	reaped, err := env.sessions.ReapAbandoned(now)
	require.NoError(t, err)
	assert.Equal(t, 1, reaped)

	got, err := env.sessions.Get(g.ID, "idle")
	require.NoError(t, err)
	assert.Equal(t, models.SessionAbandoned, got.Status)
	assert.Nil(t, got.FinalScore)

	kept, err := env.sessions.Get(g.ID, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionActive, kept.Status)
}

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)
	earlierToday := now.Add(-3 * time.Hour)

	tests := []struct {
		name        string
		last        *time.Time
		current     int
		longest     int
		wantCurrent int
		wantLongest int
	}{
		{"first ever activity", nil, 0, 0, 1, 1},
		{"same day keeps streak", &earlierToday, 4, 6, 4, 6},
		{"next day extends", &yesterday, 4, 4, 5, 5},
		{"gap resets", &threeDaysAgo, 9, 9, 1, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			child := &models.Child{
				CurrentStreak: tt.current,
				LongestStreak: tt.longest,
				LastActivity:  tt.last,
			}
			current, longest := nextStreak(child, now)
			assert.Equal(t, tt.wantCurrent, current)
			assert.Equal(t, tt.wantLongest, longest)
		})
	}
}
