package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rafiq/internal/models"
	"rafiq/internal/session"
)

func assessedSession(childID string, lesson *models.Lesson, score, exchanges, hints int) *models.Session {
	now := time.Now().UTC()
	s := session.New("assessed", childID, lesson, "arabic", now)
	for i := 0; i < exchanges*2; i++ {
		s.Messages = append(s.Messages, models.ChatMessage{})
	}
	s.Progress.Score = score
	s.Progress.HintsUsed = hints
	s.Status = models.SessionCompleted
	s.FinalScore = &score
	return s
}

func TestGenerateForSession(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "assess@example.com")
	c := env.createChild(t, g.ID)
	l := env.createLesson(t, "arabic")

	// 85 overall, 4 exchanges of participation, 1 hint: 85+4-2 = 87
	sess := assessedSession(c.ID, l, 85, 4, 1)
	result, err := env.assessments.GenerateForSession(sess)
	require.NoError(t, err)

	assert.Equal(t, 85, result.OverallScore)
	assert.Equal(t, models.SubjectArabic, result.Subject)
	assert.Equal(t, models.AssessmentRuleBased, result.AssessmentMethod)

	// the arabic persona's focus areas are the assessed skills
	require.Contains(t, result.SkillScores, "letters")
	require.Contains(t, result.SkillScores, "vocabulary")
	require.Contains(t, result.SkillScores, "reading")
	assert.Equal(t, 87, result.SkillScores["letters"])

	assert.Contains(t, result.Strengths, "letters")
	assert.Empty(t, result.MasteredSkills)
	assert.Empty(t, result.StrugglingSkills)
	require.NotEmpty(t, result.Recommendations)
	assert.Contains(t, result.Recommendations[0], "more challenging")

	// the assessment is stored and retrievable by session
	stored, err := env.assessments.GetBySession(sess.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, result.ID, stored.ID)
}

func TestGenerateForSessionMastery(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "mastery@example.com")
	c := env.createChild(t, g.ID)
	l := env.createLesson(t, "arabic")

	// 95+5-0 = 100: every skill mastered
	sess := assessedSession(c.ID, l, 95, 5, 0)
	result, err := env.assessments.GenerateForSession(sess)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"letters", "vocabulary", "reading"}, result.MasteredSkills)
	assert.Empty(t, result.AreasForImprovement)
}

func TestGenerateForSessionStruggling(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "struggle@example.com")
	c := env.createChild(t, g.ID)
	l := env.createLesson(t, "arabic")

	// 30+2-12 = 20: every skill struggling, heavy hint use flagged
	sess := assessedSession(c.ID, l, 30, 2, 6)
	result, err := env.assessments.GenerateForSession(sess)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"letters", "vocabulary", "reading"}, result.StrugglingSkills)
	require.Len(t, result.Recommendations, 2)
	assert.Contains(t, result.Recommendations[0], "Revisit earlier lessons")
	assert.Contains(t, result.Recommendations[1], "fewer hints")
}

func TestGenerateForSessionRequiresFinalScore(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "nofinal@example.com")
	c := env.createChild(t, g.ID)
	l := env.createLesson(t, "arabic")

	sess := session.New("active", c.ID, l, "arabic", time.Now().UTC())
	_, err := env.assessments.GenerateForSession(sess)
	require.Error(t, err)
}
