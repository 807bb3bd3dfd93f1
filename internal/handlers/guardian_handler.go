package handlers

import (
	"net/http"

	"rafiq/internal/schema"
	"rafiq/internal/service"
)

// GuardianHandler serves guardian profile endpoints
type GuardianHandler struct {
	familyService *service.FamilyService
}

// NewGuardianHandler creates a new guardian handler
func NewGuardianHandler(familyService *service.FamilyService) *GuardianHandler {
	return &GuardianHandler{familyService: familyService}
}

// GetProfile handles GET /api/guardian/profile
func (h *GuardianHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	respondJSON(w, http.StatusOK, guardian)
}

// UpdateProfile handles PATCH /api/guardian/profile
func (h *GuardianHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	var req schema.UpdateGuardianRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	updated, err := h.familyService.UpdateGuardian(guardian.ID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Deactivate handles DELETE /api/guardian/profile
func (h *GuardianHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	if err := h.familyService.DeactivateGuardian(guardian.ID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "account deactivated")
}
