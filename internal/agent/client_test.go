package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientReply(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq ReplyRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"agentId":   "arabic",
			"agentName": "الأستاذ فصيح",
			"response":  "أحسنت!",
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-key", time.Second)
	reply, err := c.Reply(context.Background(), ReplyRequest{
		AgentID:   "arabic",
		SessionID: "sess-1",
		ChildName: "Omar",
		Content:   "مرحبا",
	})
	require.NoError(t, err)

	assert.Equal(t, "/agents/arabic/chat", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "مرحبا", gotReq.Content)
	assert.Equal(t, "أحسنت!", reply.Content)
	// contentType defaults when the service omits it
	assert.Equal(t, "text", reply.ContentType)
}

func TestClientReplyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "", time.Second).Reply(context.Background(), ReplyRequest{AgentID: "arabic"})
	assert.ErrorIs(t, err, ErrAgentUnavailable)
}

func TestClientReplyUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", 100*time.Millisecond)
	_, err := c.Reply(context.Background(), ReplyRequest{AgentID: "arabic"})
	assert.ErrorIs(t, err, ErrAgentUnavailable)
}

func TestClientReplyMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "", time.Second).Reply(context.Background(), ReplyRequest{AgentID: "arabic"})
	assert.ErrorIs(t, err, ErrAgentUnavailable)
}
