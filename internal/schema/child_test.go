package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rafiq/internal/models"
)

var refNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func validCreateChild() CreateChildRequest {
	return CreateChildRequest{
		FirstName:   "Omar",
		LastName:    "Hassan",
		DateOfBirth: "2019-03-01T00:00:00Z",
	}
}

func TestCreateChildDefaults(t *testing.T) {
	out, err := validCreateChild().Validate(refNow)
	require.NoError(t, err)

	assert.Equal(t, models.LanguageArabic, out.PreferredLanguage)
	assert.Equal(t, models.DifficultyBeginner, out.LearningLevel)
	assert.True(t, out.VoiceEnabled)
	assert.True(t, out.ChatEnabled)
	assert.Equal(t, 30, out.Controls.DailyTimeLimit)
	assert.Equal(t, []models.Subject{models.SubjectArabic}, out.Controls.EnabledSubjects)
	assert.False(t, out.Controls.VoiceRecordingAllowed)
	assert.Equal(t, 30, out.Controls.DataRetentionDays)
	assert.Equal(t, []string{}, out.Interests)
}

func TestCreateChildAgeGroupDerived(t *testing.T) {
	tests := []struct {
		name string
		dob  string
		want models.AgeGroup
	}{
		{"five years old", "2021-01-01T00:00:00Z", models.AgeGroup4to6},
		{"eight years old", "2018-01-01T00:00:00Z", models.AgeGroup7to9},
		{"eleven years old", "2015-01-01T00:00:00Z", models.AgeGroup10to12},
		{"boundary into next band", "2019-06-14T00:00:00Z", models.AgeGroup7to9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateChild()
			req.DateOfBirth = tt.dob
			out, err := req.Validate(refNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.AgeGroup)
		})
	}
}

func TestCreateChildAgeOutOfBand(t *testing.T) {
	for _, dob := range []string{"2024-01-01T00:00:00Z", "2010-01-01T00:00:00Z"} {
		req := validCreateChild()
		req.DateOfBirth = dob
		_, err := req.Validate(refNow)
		require.Error(t, err, dob)

		verrs, ok := AsValidationErrors(err)
		require.True(t, ok)
		assert.True(t, verrs.Has("dateOfBirth"))
	}
}

func TestCreateChildBirthDateAlias(t *testing.T) {
	req := CreateChildRequest{
		FirstName: "Omar",
		LastName:  "Hassan",
		BirthDate: "2019-03-01T00:00:00Z",
	}
	out, err := req.Validate(refNow)
	require.NoError(t, err)
	assert.Equal(t, 2019, out.DateOfBirth.Year())

	// dateOfBirth wins when both are present
	req.DateOfBirth = "2018-03-01T00:00:00Z"
	out, err = req.Validate(refNow)
	require.NoError(t, err)
	assert.Equal(t, 2018, out.DateOfBirth.Year())
}

func TestCreateChildControlRanges(t *testing.T) {
	low, high := 5, 200
	retention := 120

	req := validCreateChild()
	req.DailyTimeLimit = &low
	_, err := req.Validate(refNow)
	require.Error(t, err)

	req = validCreateChild()
	req.DailyTimeLimit = &high
	_, err = req.Validate(refNow)
	require.Error(t, err)

	req = validCreateChild()
	req.DataRetentionDays = &retention
	_, err = req.Validate(refNow)
	require.Error(t, err)
}

func TestCreateChildInvalidSubject(t *testing.T) {
	req := validCreateChild()
	req.EnabledSubjects = []string{"arabic", "chemistry"}

	_, err := req.Validate(refNow)
	require.Error(t, err)

	verrs, _ := AsValidationErrors(err)
	assert.True(t, verrs.Has("enabledSubjects"))
}

func TestUpdateChildPartial(t *testing.T) {
	name := "Sara"
	patch, err := UpdateChildRequest{FirstName: &name}.Validate(refNow)
	require.NoError(t, err)

	require.NotNil(t, patch.FirstName)
	assert.Equal(t, "Sara", *patch.FirstName)
	assert.Nil(t, patch.LastName)
	assert.Nil(t, patch.DateOfBirth)
	assert.Nil(t, patch.PreferredLanguage)
}

func TestUpdateChildDateOfBirthRederivesAgeGroup(t *testing.T) {
	dob := "2015-01-01T00:00:00Z"
	patch, err := UpdateChildRequest{DateOfBirth: &dob}.Validate(refNow)
	require.NoError(t, err)

	require.NotNil(t, patch.AgeGroup)
	assert.Equal(t, models.AgeGroup10to12, *patch.AgeGroup)
}

func TestUpdateChildPresentButInvalidFails(t *testing.T) {
	empty := ""
	_, err := UpdateChildRequest{FirstName: &empty}.Validate(refNow)
	require.Error(t, err)
}

func TestUpdateControlsPartial(t *testing.T) {
	limit := 60
	patch, err := UpdateControlsRequest{DailyTimeLimit: &limit}.Validate()
	require.NoError(t, err)

	require.NotNil(t, patch.DailyTimeLimit)
	assert.Equal(t, 60, *patch.DailyTimeLimit)
	assert.Nil(t, patch.EnabledSubjects)
	assert.Nil(t, patch.DataRetentionDays)

	bad := 0
	_, err = UpdateControlsRequest{DailyTimeLimit: &bad}.Validate()
	require.Error(t, err)
}
