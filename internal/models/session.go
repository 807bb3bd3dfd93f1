package models

import "time"

// SessionStatus is the lifecycle state of a learning session
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPaused    SessionStatus = "paused"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// IsTerminal reports whether no further transitions are allowed
func (s SessionStatus) IsTerminal() bool {
	return s == SessionCompleted || s == SessionAbandoned
}

// MessageRole identifies the author of a chat message
type MessageRole string

const (
	RoleChild MessageRole = "child"
	RoleAgent MessageRole = "agent"
)

// ChatMessage is one entry in a session's append-only message log
type ChatMessage struct {
	ID          string      `json:"id"`
	SessionID   string      `json:"-"`
	Role        MessageRole `json:"role"`
	Content     string      `json:"content"`
	ContentType string      `json:"contentType"` // text or audio
	AudioURL    string      `json:"audioUrl,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

// SessionProgress is the accumulated progress of one session
type SessionProgress struct {
	ActivitiesCompleted []string `json:"activitiesCompleted"`
	CurrentActivity     string   `json:"currentActivity,omitempty"`
	Score               int      `json:"score"`     // 0-100
	TimeSpent           int      `json:"timeSpent"` // minutes
	EngagementLevel     string   `json:"engagementLevel,omitempty"` // low, medium, high
	HintsUsed           int      `json:"hintsUsed"`
}

// Session is one timed learning interaction between a child and an agent
type Session struct {
	ID       string        `json:"id"`
	ChildID  string        `json:"childId"`
	LessonID string        `json:"lessonId"`
	Subject  Subject       `json:"subject"`
	AgentID  string        `json:"agentId"`
	Status   SessionStatus `json:"status"`

	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	Progress SessionProgress `json:"progress"`
	Messages []ChatMessage   `json:"messages"`

	// Set only at completion
	FinalScore   *int     `json:"finalScore,omitempty"`
	PointsEarned int      `json:"pointsEarned"`
	BadgesEarned []string `json:"badgesEarned"`

	// LastActivityAt drives both time accrual and the abandonment timeout
	LastActivityAt time.Time  `json:"lastActivityAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}
