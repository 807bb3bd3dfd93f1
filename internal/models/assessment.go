package models

import "time"

// AssessmentMethod identifies how an assessment was produced
type AssessmentMethod string

const (
	AssessmentRuleBased   AssessmentMethod = "rule_based"
	AssessmentAIEvaluated AssessmentMethod = "ai_evaluated"
	AssessmentHybrid      AssessmentMethod = "hybrid"
)

// AssessmentResult is derived once from a completed session and never mutated
type AssessmentResult struct {
	ID        string  `json:"id"`
	SessionID string  `json:"sessionId"`
	ChildID   string  `json:"childId"`
	Subject   Subject `json:"subject"`

	SkillScores  map[string]int `json:"skillScores"` // skill name -> 0-100
	OverallScore int            `json:"overallScore"`

	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	Recommendations     []string `json:"recommendations"`

	MasteredSkills   []string `json:"masteredSkills"`
	StrugglingSkills []string `json:"strugglingSkills"`

	AssessmentMethod AssessmentMethod `json:"assessmentMethod"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// SubjectProgress is the per-subject slice of a progress report
type SubjectProgress struct {
	SessionsCompleted int      `json:"sessionsCompleted"`
	AverageScore      float64  `json:"averageScore"`
	TimeSpent         int      `json:"timeSpent"` // minutes
	LessonsCompleted  []string `json:"lessonsCompleted"`
}

// EarnedBadge records a badge awarded to a child
type EarnedBadge struct {
	BadgeID  string    `json:"badgeId"`
	EarnedAt time.Time `json:"earnedAt"`
}

// ProgressReport is a read-only aggregate over a date range for one child.
// It is computed on demand and never persisted.
type ProgressReport struct {
	ChildID   string    `json:"childId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	TotalSessions  int     `json:"totalSessions"`
	TotalTimeSpent int     `json:"totalTimeSpent"` // minutes
	AverageScore   float64 `json:"averageScore"`
	PointsEarned   int     `json:"pointsEarned"`

	SubjectProgress map[Subject]*SubjectProgress `json:"subjectProgress"`
	BadgesEarned    []EarnedBadge                `json:"badgesEarned"`

	ParentRecommendations []string `json:"parentRecommendations"`
}
