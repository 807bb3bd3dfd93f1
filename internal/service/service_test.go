package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rafiq/internal/agent"
	"rafiq/internal/database"
	"rafiq/internal/models"
	"rafiq/internal/repository"
	"rafiq/internal/schema"
	"rafiq/internal/security"
)

// testEnv wires the full service stack against a throwaway SQLite
// database with the built-in scripted tutor.
type testEnv struct {
	db *database.DB

	guardianRepo   *repository.GuardianRepository
	childRepo      *repository.ChildRepository
	lessonRepo     *repository.LessonRepository
	sessionRepo    *repository.SessionRepository
	assessmentRepo *repository.AssessmentRepository
	badgeRepo      *repository.BadgeRepository

	tokens      *security.TokenManager
	auth        *AuthService
	family      *FamilyService
	lessons     *LessonService
	sessions    *SessionService
	assessments *AssessmentService
	badges      *BadgeService
	progress    *ProgressService
	retention   *RetentionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	env := &testEnv{
		db:             db,
		guardianRepo:   repository.NewGuardianRepository(db),
		childRepo:      repository.NewChildRepository(db),
		lessonRepo:     repository.NewLessonRepository(db),
		sessionRepo:    repository.NewSessionRepository(db),
		assessmentRepo: repository.NewAssessmentRepository(db),
		badgeRepo:      repository.NewBadgeRepository(db),
	}

	env.tokens = security.NewTokenManager("test-secret", 30*time.Minute, 7*24*time.Hour)
	email, err := NewEmailService("me-central-1", "", "Rafiq", "http://localhost:3000")
	require.NoError(t, err)

	env.auth = NewAuthService(env.guardianRepo, env.tokens, email)
	env.family = NewFamilyService(env.guardianRepo, env.childRepo)
	env.lessons = NewLessonService(env.lessonRepo)
	env.assessments = NewAssessmentService(env.assessmentRepo)
	env.badges = NewBadgeService(env.badgeRepo)
	env.sessions = NewSessionService(
		env.sessionRepo, env.childRepo, env.lessonRepo, agent.NewScripted(),
		env.assessments, env.badges,
		30, 30*time.Minute,
	)
	env.progress = NewProgressService(env.childRepo, env.sessionRepo, env.badgeRepo)
	env.retention = NewRetentionService(env.childRepo, env.sessionRepo, env.assessmentRepo)

	require.NoError(t, env.badges.Seed())
	return env
}

func (env *testEnv) registerGuardian(t *testing.T, email string) *models.Guardian {
	t.Helper()

	g, _, err := env.auth.Register(context.Background(), schema.RegisterGuardianRequest{
		Email:           email,
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FirstName:       "Layla",
		LastName:        "Hassan",
		TermsAccepted:   true,
	})
	require.NoError(t, err)
	return g
}

func (env *testEnv) createChild(t *testing.T, guardianID string) *models.Child {
	t.Helper()

	dob := time.Now().UTC().AddDate(-8, 0, 0).Format(time.RFC3339)
	c, err := env.family.CreateChild(guardianID, schema.CreateChildRequest{
		FirstName:   "Omar",
		LastName:    "Hassan",
		DateOfBirth: dob,
	})
	require.NoError(t, err)
	return c
}

func (env *testEnv) createLesson(t *testing.T, subject string) *models.Lesson {
	t.Helper()

	published := true
	l, err := env.lessons.CreateLesson(schema.CreateLessonRequest{
		Title:      "الحروف الهجائية",
		Subject:    subject,
		AgeGroup:   "7-9",
		Difficulty: "beginner",
		Activities: []schema.ActivityRequest{
			{ID: "intro", Type: "reading", Title: "تعرف على الحروف", ExpectedDuration: 5},
		},
		EstimatedDuration: 15,
		Objectives:        []string{"recognize letters"},
		IsPublished:       &published,
	})
	require.NoError(t, err)
	return l
}
