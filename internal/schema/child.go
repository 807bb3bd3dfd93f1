package schema

import (
	"strings"
	"time"

	"rafiq/internal/models"
)

// CreateChildRequest is the child registration payload.
// BirthDate is a deprecated synonym for DateOfBirth kept for older
// clients; it is resolved here and never carried further.
type CreateChildRequest struct {
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	DateOfBirth       string    `json:"dateOfBirth"`
	BirthDate         string    `json:"birthDate"`
	PreferredLanguage string    `json:"preferredLanguage"`
	LearningLevel     string    `json:"learningLevel"`
	Interests         []string  `json:"interests"`
	SpecialNeeds      string    `json:"specialNeeds"`
	VoiceEnabled      *bool     `json:"voiceEnabled"`
	ChatEnabled       *bool     `json:"chatEnabled"`

	DailyTimeLimit        *int     `json:"dailyTimeLimit"`
	EnabledSubjects       []string `json:"enabledSubjects"`
	VoiceRecordingAllowed *bool    `json:"voiceRecordingAllowed"`
	DataRetentionDays     *int     `json:"dataRetentionDays"`
}

// NewChild is a validated, normalized child registration
type NewChild struct {
	FirstName         string
	LastName          string
	DateOfBirth       time.Time
	AgeGroup          models.AgeGroup
	PreferredLanguage models.Language
	LearningLevel     models.Difficulty
	Interests         []string
	SpecialNeeds      string
	VoiceEnabled      bool
	ChatEnabled       bool
	Controls          models.ParentalControls
}

// Validate checks every field, derives the age band from the date of
// birth and applies defaults only when no violation was found
func (r CreateChildRequest) Validate(now time.Time) (NewChild, error) {
	var v violations
	out := NewChild{
		PreferredLanguage: models.LanguageArabic,
		LearningLevel:     models.DifficultyBeginner,
		Interests:         []string{},
		VoiceEnabled:      true,
		ChatEnabled:       true,
		Controls: models.ParentalControls{
			DailyTimeLimit:        30,
			EnabledSubjects:       []models.Subject{models.SubjectArabic},
			VoiceRecordingAllowed: false,
			DataRetentionDays:     30,
		},
	}

	out.FirstName = v.requireString("firstName", r.FirstName, 1)
	out.LastName = v.requireString("lastName", r.LastName, 1)

	dob := r.DateOfBirth
	if dob == "" {
		dob = r.BirthDate
	}
	if t, ok := v.datetime("dateOfBirth", dob); ok {
		out.DateOfBirth = t
		group, inBand := AgeGroupFor(t, now)
		if !inBand {
			v.add("dateOfBirth", "age must fall within 4-12 years", dob)
		}
		out.AgeGroup = group
	}

	if r.PreferredLanguage != "" {
		out.PreferredLanguage = v.language("preferredLanguage", r.PreferredLanguage)
	}
	if r.LearningLevel != "" {
		out.LearningLevel = v.difficulty("learningLevel", r.LearningLevel)
	}
	if r.Interests != nil {
		out.Interests = r.Interests
	}
	out.SpecialNeeds = strings.TrimSpace(r.SpecialNeeds)
	if r.VoiceEnabled != nil {
		out.VoiceEnabled = *r.VoiceEnabled
	}
	if r.ChatEnabled != nil {
		out.ChatEnabled = *r.ChatEnabled
	}

	if r.DailyTimeLimit != nil {
		v.intRange("dailyTimeLimit", *r.DailyTimeLimit, 10, 180)
		out.Controls.DailyTimeLimit = *r.DailyTimeLimit
	}
	if r.EnabledSubjects != nil {
		out.Controls.EnabledSubjects = v.subjects("enabledSubjects", r.EnabledSubjects)
	}
	if r.VoiceRecordingAllowed != nil {
		out.Controls.VoiceRecordingAllowed = *r.VoiceRecordingAllowed
	}
	if r.DataRetentionDays != nil {
		v.intRange("dataRetentionDays", *r.DataRetentionDays, 1, 90)
		out.Controls.DataRetentionDays = *r.DataRetentionDays
	}

	if err := v.err(); err != nil {
		return NewChild{}, err
	}
	return out, nil
}

// UpdateChildRequest is the full create schema with every field optional
type UpdateChildRequest struct {
	FirstName         *string   `json:"firstName"`
	LastName          *string   `json:"lastName"`
	DateOfBirth       *string   `json:"dateOfBirth"`
	BirthDate         *string   `json:"birthDate"`
	PreferredLanguage *string   `json:"preferredLanguage"`
	LearningLevel     *string   `json:"learningLevel"`
	Interests         *[]string `json:"interests"`
	SpecialNeeds      *string   `json:"specialNeeds"`
	IsActive          *bool     `json:"isActive"`
	VoiceEnabled      *bool     `json:"voiceEnabled"`
	ChatEnabled       *bool     `json:"chatEnabled"`
}

// ChildPatch is a validated partial child update
type ChildPatch struct {
	FirstName         *string
	LastName          *string
	DateOfBirth       *time.Time
	AgeGroup          *models.AgeGroup
	PreferredLanguage *models.Language
	LearningLevel     *models.Difficulty
	Interests         *[]string
	SpecialNeeds      *string
	IsActive          *bool
	VoiceEnabled      *bool
	ChatEnabled       *bool
}

// Validate checks only the fields that are present
func (r UpdateChildRequest) Validate(now time.Time) (ChildPatch, error) {
	var v violations
	var out ChildPatch

	if r.FirstName != nil {
		name := v.requireString("firstName", *r.FirstName, 1)
		out.FirstName = &name
	}
	if r.LastName != nil {
		name := v.requireString("lastName", *r.LastName, 1)
		out.LastName = &name
	}

	dob := r.DateOfBirth
	if dob == nil {
		dob = r.BirthDate
	}
	if dob != nil {
		if t, ok := v.datetime("dateOfBirth", *dob); ok {
			group, inBand := AgeGroupFor(t, now)
			if !inBand {
				v.add("dateOfBirth", "age must fall within 4-12 years", *dob)
			}
			out.DateOfBirth = &t
			out.AgeGroup = &group
		}
	}

	if r.PreferredLanguage != nil {
		lang := v.language("preferredLanguage", *r.PreferredLanguage)
		out.PreferredLanguage = &lang
	}
	if r.LearningLevel != nil {
		level := v.difficulty("learningLevel", *r.LearningLevel)
		out.LearningLevel = &level
	}
	if r.Interests != nil {
		out.Interests = r.Interests
	}
	if r.SpecialNeeds != nil {
		trimmed := strings.TrimSpace(*r.SpecialNeeds)
		out.SpecialNeeds = &trimmed
	}
	out.IsActive = r.IsActive
	out.VoiceEnabled = r.VoiceEnabled
	out.ChatEnabled = r.ChatEnabled

	if err := v.err(); err != nil {
		return ChildPatch{}, err
	}
	return out, nil
}

// UpdateControlsRequest is a partial parental-controls update
type UpdateControlsRequest struct {
	DailyTimeLimit        *int      `json:"dailyTimeLimit"`
	EnabledSubjects       *[]string `json:"enabledSubjects"`
	VoiceRecordingAllowed *bool     `json:"voiceRecordingAllowed"`
	DataRetentionDays     *int      `json:"dataRetentionDays"`
}

// ControlsPatch is a validated partial parental-controls update
type ControlsPatch struct {
	DailyTimeLimit        *int
	EnabledSubjects       *[]models.Subject
	VoiceRecordingAllowed *bool
	DataRetentionDays     *int
}

// Validate checks only the fields that are present
func (r UpdateControlsRequest) Validate() (ControlsPatch, error) {
	var v violations
	var out ControlsPatch

	if r.DailyTimeLimit != nil {
		v.intRange("dailyTimeLimit", *r.DailyTimeLimit, 10, 180)
		out.DailyTimeLimit = r.DailyTimeLimit
	}
	if r.EnabledSubjects != nil {
		subjects := v.subjects("enabledSubjects", *r.EnabledSubjects)
		out.EnabledSubjects = &subjects
	}
	out.VoiceRecordingAllowed = r.VoiceRecordingAllowed
	if r.DataRetentionDays != nil {
		v.intRange("dataRetentionDays", *r.DataRetentionDays, 1, 90)
		out.DataRetentionDays = r.DataRetentionDays
	}

	if err := v.err(); err != nil {
		return ControlsPatch{}, err
	}
	return out, nil
}
