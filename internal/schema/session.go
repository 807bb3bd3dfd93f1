package schema

// StartSessionRequest starts a learning session for a child
type StartSessionRequest struct {
	ChildID  string `json:"childId"`
	LessonID string `json:"lessonId"`
	AgentID  string `json:"agentId"`
}

// Validate checks the start payload
func (r StartSessionRequest) Validate() (StartSessionRequest, error) {
	var v violations
	out := StartSessionRequest{}
	out.ChildID = v.uuid("childId", r.ChildID)
	out.LessonID = v.uuid("lessonId", r.LessonID)
	out.AgentID = v.requireString("agentId", r.AgentID, 1)
	if err := v.err(); err != nil {
		return StartSessionRequest{}, err
	}
	return out, nil
}

// SendMessageRequest appends one child message to a session.
// AudioRef is an opaque reference to an already-uploaded recording.
type SendMessageRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	AudioRef    string `json:"audioRef"`
}

// Validate checks the message payload and defaults contentType to text
func (r SendMessageRequest) Validate() (SendMessageRequest, error) {
	var v violations
	out := SendMessageRequest{ContentType: "text", AudioRef: r.AudioRef}

	out.Content = v.requireString("content", r.Content, 1)
	switch r.ContentType {
	case "", "text":
	case "audio":
		out.ContentType = "audio"
		if r.AudioRef == "" {
			v.add("audioRef", "is required for audio messages", nil)
		}
	default:
		v.add("contentType", "must be one of text, audio", r.ContentType)
	}

	if err := v.err(); err != nil {
		return SendMessageRequest{}, err
	}
	return out, nil
}
