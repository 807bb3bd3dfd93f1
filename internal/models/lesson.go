package models

import "time"

// ActivityContent is the typed content payload of a lesson activity
type ActivityContent struct {
	Type     string `json:"type"` // text, audio, video, interactive
	Content  string `json:"content"`
	Duration int    `json:"duration,omitempty"` // minutes
}

// Activity is a single step within a lesson
type Activity struct {
	ID                    string          `json:"id"`
	Type                  string          `json:"type"` // reading, listening, speaking, writing, quiz, game
	Title                 string          `json:"title"`
	Description           string          `json:"description"`
	Content               ActivityContent `json:"content"`
	ExpectedDuration      int             `json:"expectedDuration"` // minutes
	Points                int             `json:"points"`
	RequiredForCompletion bool            `json:"requiredForCompletion"`
}

// Lesson is a catalog entry describing one unit of learning content
type Lesson struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Subject     Subject    `json:"subject"`
	AgeGroup    AgeGroup   `json:"ageGroup"`
	Difficulty  Difficulty `json:"difficulty"`

	Activities        []Activity `json:"activities"`
	EstimatedDuration int        `json:"estimatedDuration"` // total minutes

	Objectives []string `json:"objectives"`
	Keywords   []string `json:"keywords"`

	Prerequisites []string `json:"prerequisites"` // lesson IDs
	Unlocks       []string `json:"unlocks"`       // lesson IDs

	IsPublished bool       `json:"isPublished"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}
