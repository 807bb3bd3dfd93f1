package models

// BadgeCriteriaType identifies what a badge criterion measures
type BadgeCriteriaType string

const (
	CriteriaSessionsCompleted BadgeCriteriaType = "sessions_completed"
	CriteriaScoreThreshold    BadgeCriteriaType = "score_threshold"
	CriteriaStreak            BadgeCriteriaType = "streak"
	CriteriaSkillMastery      BadgeCriteriaType = "skill_mastery"
)

// BadgeCriteria is the threshold rule that awards a badge
type BadgeCriteria struct {
	Type      BadgeCriteriaType `json:"type"`
	Value     int               `json:"value"`
	Timeframe string            `json:"timeframe,omitempty"` // day, week, month, all_time
}

// Badge is static reference data describing an achievement
type Badge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Subject     Subject       `json:"subject,omitempty"`
	Criteria    BadgeCriteria `json:"criteria"`
	Rarity      string        `json:"rarity"` // common, rare, epic, legendary
	Points      int           `json:"points"`
}
