package handlers

import (
	"net/http"

	"rafiq/internal/agent"
)

// AgentHandler serves the tutor persona catalog
type AgentHandler struct{}

// NewAgentHandler creates a new agent handler
func NewAgentHandler() *AgentHandler {
	return &AgentHandler{}
}

// List handles GET /api/agents
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, agent.Personas())
}

// Get handles GET /api/agents/{id}
func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	persona := agent.PersonaByID(r.PathValue("id"))
	if persona == nil {
		writeError(w, http.StatusNotFound, "agent not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, persona)
}
