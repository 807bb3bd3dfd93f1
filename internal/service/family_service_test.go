package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rafiq/internal/models"
	"rafiq/internal/schema"
)

func TestCreateChildAppliesDefaults(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "family@example.com")

	c := env.createChild(t, g.ID)

	assert.Equal(t, models.AgeGroup7to9, c.AgeGroup)
	assert.Equal(t, models.LanguageArabic, c.PreferredLanguage)
	assert.Equal(t, models.DifficultyBeginner, c.LearningLevel)
	assert.True(t, c.IsActive)
	assert.Equal(t, 30, c.Controls.DailyTimeLimit)
	assert.Equal(t, []models.Subject{models.SubjectArabic}, c.Controls.EnabledSubjects)
	assert.Equal(t, 30, c.Controls.DataRetentionDays)
}

func TestGetChildOwnership(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "owner@example.com")
	other := env.registerGuardian(t, "stranger@example.com")
	c := env.createChild(t, g.ID)

	got, err := env.family.GetChild(g.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	// another guardian's child looks exactly like a missing one
	_, err = env.family.GetChild(other.ID, c.ID)
	assert.ErrorIs(t, err, ErrChildNotFound)

	_, err = env.family.GetChild(g.ID, "no-such-child")
	assert.ErrorIs(t, err, ErrChildNotFound)
}

func TestUpdateChildPatch(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "patch@example.com")
	c := env.createChild(t, g.ID)

	name := "Sara"
	level := "intermediate"
	updated, err := env.family.UpdateChild(g.ID, c.ID, schema.UpdateChildRequest{
		FirstName:     &name,
		LearningLevel: &level,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sara", updated.FirstName)
	assert.Equal(t, models.DifficultyIntermediate, updated.LearningLevel)
	// untouched fields keep their values
	assert.Equal(t, c.LastName, updated.LastName)
}

func TestUpdateControlsPersists(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "controls@example.com")
	c := env.createChild(t, g.ID)

	limit := 60
	subjects := []string{"arabic", "english"}
	allowed := true
	updated, err := env.family.UpdateControls(g.ID, c.ID, schema.UpdateControlsRequest{
		DailyTimeLimit:        &limit,
		EnabledSubjects:       &subjects,
		VoiceRecordingAllowed: &allowed,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, updated.Controls.DailyTimeLimit)
	assert.True(t, updated.Controls.VoiceRecordingAllowed)

	got, err := env.family.GetChild(g.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Subject{models.SubjectArabic, models.SubjectEnglish}, got.Controls.EnabledSubjects)
}

func TestDeleteChildRequiresOwnership(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "delete@example.com")
	other := env.registerGuardian(t, "not-owner@example.com")
	c := env.createChild(t, g.ID)

	assert.ErrorIs(t, env.family.DeleteChild(other.ID, c.ID), ErrChildNotFound)

	require.NoError(t, env.family.DeleteChild(g.ID, c.ID))
	_, err := env.family.GetChild(g.ID, c.ID)
	assert.ErrorIs(t, err, ErrChildNotFound)
}

func TestUpdateGuardianProfile(t *testing.T) {
	env := newTestEnv(t)
	g := env.registerGuardian(t, "profile@example.com")

	name := "Noura"
	lang := "en"
	updated, err := env.family.UpdateGuardian(g.ID, schema.UpdateGuardianRequest{
		FirstName:         &name,
		PreferredLanguage: &lang,
	})
	require.NoError(t, err)
	assert.Equal(t, "Noura", updated.FirstName)
	assert.Equal(t, models.LanguageEnglish, updated.PreferredLanguage)
	assert.Equal(t, g.LastName, updated.LastName)
}
