package agent

import (
	"context"
	"errors"
)

// ErrAgentUnavailable is returned when no tutor reply can be produced
var ErrAgentUnavailable = errors.New("agent unavailable")

// ReplyRequest carries one child message to a tutor agent
type ReplyRequest struct {
	AgentID   string `json:"agentId"`
	SessionID string `json:"sessionId"`
	ChildName string `json:"childName"`
	Language  string `json:"language"`
	Content   string `json:"content"`
	// Recent conversation turns, oldest first, for context
	History []Turn `json:"history,omitempty"`
}

// Turn is one prior exchange entry sent as context
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is a tutor agent's answer to a child message
type Reply struct {
	AgentID     string   `json:"agentId"`
	AgentName   string   `json:"agentName"`
	Content     string   `json:"response"`
	ContentType string   `json:"contentType"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Tutor produces agent replies. Implementations are the remote
// tutoring service client and the built-in scripted responder.
type Tutor interface {
	Reply(ctx context.Context, req ReplyRequest) (*Reply, error)
}
