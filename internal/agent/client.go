package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Client talks to the remote tutoring service over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a tutoring service client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Reply sends a child message to the tutoring service and returns the
// agent's answer. Any transport or non-200 failure maps to
// ErrAgentUnavailable so callers can leave the session untouched.
func (c *Client) Reply(ctx context.Context, reqData ReplyRequest) (*Reply, error) {
	url := fmt.Sprintf("%s/agents/%s/chat", c.baseURL, reqData.AgentID)

	body, err := json.Marshal(reqData)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Agent request failed for %s: %v", reqData.AgentID, err)
		return nil, ErrAgentUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("Agent request for %s returned status %d: %s", reqData.AgentID, resp.StatusCode, string(snippet))
		return nil, ErrAgentUnavailable
	}

	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		log.Printf("Agent response decode failed for %s: %v", reqData.AgentID, err)
		return nil, ErrAgentUnavailable
	}

	log.Printf("Agent %s replied in %v", reqData.AgentID, time.Since(start))
	if reply.ContentType == "" {
		reply.ContentType = "text"
	}
	return &reply, nil
}

var _ Tutor = (*Client)(nil)
