package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rafiq/internal/models"
)

func TestBadgeSeedIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.badges.Seed())
	require.NoError(t, env.badges.Seed())

	catalog, err := env.badges.Catalog()
	require.NoError(t, err)
	assert.Len(t, catalog, len(defaultBadges))
}

func TestEvaluateOnCompletion(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "badges@example.com")
	c := env.createChild(t, g.ID)

	final := 95
	sess := &models.Session{
		ID:         "sess-1",
		ChildID:    c.ID,
		Subject:    models.SubjectArabic,
		Status:     models.SessionCompleted,
		FinalScore: &final,
	}

	now := time.Now().UTC()
	awarded, bonus := env.badges.EvaluateOnCompletion(c, sess, 10, 7, now)

	assert.ElementsMatch(t, []string{"first-steps", "dedicated-learner", "high-achiever", "week-streak"}, awarded)
	assert.Equal(t, 10+25+20+25, bonus)

	// a second completion awards nothing already earned
	awarded, bonus = env.badges.EvaluateOnCompletion(c, sess, 11, 8, now)
	assert.Empty(t, awarded)
	assert.Zero(t, bonus)

	earned, err := env.badges.ListEarned(c.ID)
	require.NoError(t, err)
	assert.Len(t, earned, 4)
}

func TestEvaluateOnCompletionLowScore(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "low@example.com")
	c := env.createChild(t, g.ID)

	final := 40
	sess := &models.Session{
		ID:         "sess-1",
		ChildID:    c.ID,
		Subject:    models.SubjectArabic,
		Status:     models.SessionCompleted,
		FinalScore: &final,
	}

	awarded, bonus := env.badges.EvaluateOnCompletion(c, sess, 1, 1, time.Now().UTC())
	assert.Equal(t, []string{"first-steps"}, awarded)
	assert.Equal(t, 10, bonus)
}
