package models

import "time"

// ParentalControls holds the guardian-managed limits for a child
type ParentalControls struct {
	DailyTimeLimit        int       `json:"dailyTimeLimit"` // minutes, 10-180
	EnabledSubjects       []Subject `json:"enabledSubjects"`
	VoiceRecordingAllowed bool      `json:"voiceRecordingAllowed"`
	DataRetentionDays     int       `json:"dataRetentionDays"` // 1-90
}

// Child represents a managed learner profile under a guardian's control
type Child struct {
	ID                string     `json:"id"`
	GuardianID        string     `json:"guardianId"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	DateOfBirth       time.Time  `json:"dateOfBirth"`
	AgeGroup          AgeGroup   `json:"ageGroup"`
	PreferredLanguage Language   `json:"preferredLanguage"`
	LearningLevel     Difficulty `json:"learningLevel"`
	Interests         []string   `json:"interests"`
	SpecialNeeds      string     `json:"specialNeeds,omitempty"`
	IsActive          bool       `json:"isActive"`
	VoiceEnabled      bool       `json:"voiceEnabled"`
	ChatEnabled       bool       `json:"chatEnabled"`

	Controls ParentalControls `json:"controls"`

	// Progress tracking
	TotalPoints   int        `json:"totalPoints"`
	CurrentStreak int        `json:"currentStreak"`
	LongestStreak int        `json:"longestStreak"`
	LastActivity  *time.Time `json:"lastActivity,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// SubjectEnabled reports whether a subject is enabled for this child
func (c *Child) SubjectEnabled(subject Subject) bool {
	for _, s := range c.Controls.EnabledSubjects {
		if s == subject {
			return true
		}
	}
	return false
}
