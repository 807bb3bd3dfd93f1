package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rafiq/internal/models"
)

func validCreateLesson() CreateLessonRequest {
	return CreateLessonRequest{
		Title:      "الحروف الهجائية",
		Subject:    "arabic",
		AgeGroup:   "4-6",
		Difficulty: "beginner",
		Activities: []ActivityRequest{
			{
				ID:               "intro",
				Type:             "reading",
				Title:            "تعرف على الحروف",
				ExpectedDuration: 5,
			},
		},
		EstimatedDuration: 15,
		Objectives:        []string{"recognize the first five letters"},
	}
}

func TestCreateLessonDefaults(t *testing.T) {
	out, err := validCreateLesson().Validate()
	require.NoError(t, err)

	assert.Equal(t, models.SubjectArabic, out.Subject)
	assert.Equal(t, models.AgeGroup4to6, out.AgeGroup)
	assert.False(t, out.IsPublished)
	assert.Equal(t, []string{}, out.Keywords)
	assert.Equal(t, []string{}, out.Tags)

	require.Len(t, out.Activities, 1)
	act := out.Activities[0]
	assert.Equal(t, 10, act.Points)
	assert.True(t, act.RequiredForCompletion)
	assert.Equal(t, "text", act.Content.Type)
}

func TestCreateLessonActivityErrorsCarryPath(t *testing.T) {
	req := validCreateLesson()
	req.Activities = append(req.Activities, ActivityRequest{
		Type:             "juggling",
		ContentType:      "hologram",
		ExpectedDuration: 0,
	})

	_, err := req.Validate()
	require.Error(t, err)

	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.True(t, verrs.Has("activities[1].id"))
	assert.True(t, verrs.Has("activities[1].title"))
	assert.True(t, verrs.Has("activities[1].type"))
	assert.True(t, verrs.Has("activities[1].contentType"))
	assert.True(t, verrs.Has("activities[1].expectedDuration"))
}

func TestCreateLessonRequiresActivitiesAndObjectives(t *testing.T) {
	req := validCreateLesson()
	req.Activities = nil
	req.Objectives = nil

	_, err := req.Validate()
	require.Error(t, err)

	verrs, _ := AsValidationErrors(err)
	assert.True(t, verrs.Has("activities"))
	assert.True(t, verrs.Has("objectives"))
}

func TestCreateLessonPrerequisiteIDsMustBeUUIDs(t *testing.T) {
	req := validCreateLesson()
	req.Prerequisites = []string{testLessonID, "lesson-7"}
	req.Unlocks = []string{"next"}

	_, err := req.Validate()
	require.Error(t, err)

	verrs, _ := AsValidationErrors(err)
	assert.True(t, verrs.Has("prerequisites[1]"))
	assert.True(t, verrs.Has("unlocks[0]"))
	assert.False(t, verrs.Has("prerequisites[0]"))
}

func TestCreateLessonNegativePoints(t *testing.T) {
	neg := -5
	req := validCreateLesson()
	req.Activities[0].Points = &neg

	_, err := req.Validate()
	require.Error(t, err)

	verrs, _ := AsValidationErrors(err)
	assert.True(t, verrs.Has("activities[0].points"))
}

func TestCreateLessonExplicitPublish(t *testing.T) {
	pub := true
	req := validCreateLesson()
	req.IsPublished = &pub

	out, err := req.Validate()
	require.NoError(t, err)
	assert.True(t, out.IsPublished)
}
