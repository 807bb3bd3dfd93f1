package schema

import (
	"fmt"

	"rafiq/internal/models"
)

var activityTypes = []string{"reading", "listening", "speaking", "writing", "quiz", "game"}
var contentTypes = []string{"text", "audio", "video", "interactive"}

// ActivityRequest is one activity within a lesson creation payload
type ActivityRequest struct {
	ID                    string `json:"id"`
	Type                  string `json:"type"`
	Title                 string `json:"title"`
	Description           string `json:"description"`
	ContentType           string `json:"contentType"`
	Content               string `json:"content"`
	ContentDuration       int    `json:"contentDuration"`
	ExpectedDuration      int    `json:"expectedDuration"`
	Points                *int   `json:"points"`
	RequiredForCompletion *bool  `json:"requiredForCompletion"`
}

// CreateLessonRequest is the lesson authoring payload
type CreateLessonRequest struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Subject           string            `json:"subject"`
	AgeGroup          string            `json:"ageGroup"`
	Difficulty        string            `json:"difficulty"`
	Activities        []ActivityRequest `json:"activities"`
	EstimatedDuration int               `json:"estimatedDuration"`
	Objectives        []string          `json:"objectives"`
	Keywords          []string          `json:"keywords"`
	Prerequisites     []string          `json:"prerequisites"`
	Unlocks           []string          `json:"unlocks"`
	IsPublished       *bool             `json:"isPublished"`
	Tags              []string          `json:"tags"`
}

// NewLesson is a validated, normalized lesson
type NewLesson struct {
	Title             string
	Description       string
	Subject           models.Subject
	AgeGroup          models.AgeGroup
	Difficulty        models.Difficulty
	Activities        []models.Activity
	EstimatedDuration int
	Objectives        []string
	Keywords          []string
	Prerequisites     []string
	Unlocks           []string
	IsPublished       bool
	Tags              []string
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Validate checks the lesson and all embedded activities
func (r CreateLessonRequest) Validate() (NewLesson, error) {
	var v violations
	out := NewLesson{
		Keywords:      []string{},
		Prerequisites: []string{},
		Unlocks:       []string{},
		Tags:          []string{},
	}

	out.Title = v.requireString("title", r.Title, 3)
	out.Description = r.Description
	out.Subject = v.subject("subject", r.Subject)

	valid := false
	for _, g := range models.AgeGroups {
		if string(g) == r.AgeGroup {
			valid = true
			out.AgeGroup = g
		}
	}
	if !valid {
		v.add("ageGroup", "must be one of 4-6, 7-9, 10-12", r.AgeGroup)
	}

	out.Difficulty = v.difficulty("difficulty", r.Difficulty)

	if len(r.Activities) == 0 {
		v.add("activities", "at least one activity is required", nil)
	}
	for i, a := range r.Activities {
		path := fmt.Sprintf("activities[%d]", i)
		activity := models.Activity{
			ID:                    v.requireString(path+".id", a.ID, 1),
			Title:                 v.requireString(path+".title", a.Title, 1),
			Description:           a.Description,
			ExpectedDuration:      a.ExpectedDuration,
			Points:                10,
			RequiredForCompletion: true,
			Content: models.ActivityContent{
				Type:     a.ContentType,
				Content:  a.Content,
				Duration: a.ContentDuration,
			},
		}
		if !oneOf(a.Type, activityTypes) {
			v.add(path+".type", "invalid activity type", a.Type)
		}
		activity.Type = a.Type
		if a.ContentType == "" {
			activity.Content.Type = "text"
		} else if !oneOf(a.ContentType, contentTypes) {
			v.add(path+".contentType", "invalid content type", a.ContentType)
		}
		if a.ExpectedDuration <= 0 {
			v.add(path+".expectedDuration", "must be positive", a.ExpectedDuration)
		}
		if a.Points != nil {
			if *a.Points < 0 {
				v.add(path+".points", "must not be negative", *a.Points)
			}
			activity.Points = *a.Points
		}
		if a.RequiredForCompletion != nil {
			activity.RequiredForCompletion = *a.RequiredForCompletion
		}
		out.Activities = append(out.Activities, activity)
	}

	if r.EstimatedDuration <= 0 {
		v.add("estimatedDuration", "must be positive", r.EstimatedDuration)
	}
	out.EstimatedDuration = r.EstimatedDuration

	if len(r.Objectives) == 0 {
		v.add("objectives", "at least one objective is required", nil)
	}
	out.Objectives = r.Objectives

	if r.Keywords != nil {
		out.Keywords = r.Keywords
	}
	for i, id := range r.Prerequisites {
		if !isUUID(id) {
			v.add(fmt.Sprintf("prerequisites[%d]", i), "invalid uuid", id)
		}
	}
	if r.Prerequisites != nil {
		out.Prerequisites = r.Prerequisites
	}
	for i, id := range r.Unlocks {
		if !isUUID(id) {
			v.add(fmt.Sprintf("unlocks[%d]", i), "invalid uuid", id)
		}
	}
	if r.Unlocks != nil {
		out.Unlocks = r.Unlocks
	}
	if r.IsPublished != nil {
		out.IsPublished = *r.IsPublished
	}
	if r.Tags != nil {
		out.Tags = r.Tags
	}

	if err := v.err(); err != nil {
		return NewLesson{}, err
	}
	return out, nil
}
