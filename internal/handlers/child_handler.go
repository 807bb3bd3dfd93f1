package handlers

import (
	"net/http"

	"rafiq/internal/schema"
	"rafiq/internal/service"
)

// ChildHandler serves child profile and parental-control endpoints
type ChildHandler struct {
	familyService *service.FamilyService
	badgeService  *service.BadgeService
}

// NewChildHandler creates a new child handler
func NewChildHandler(familyService *service.FamilyService, badgeService *service.BadgeService) *ChildHandler {
	return &ChildHandler{
		familyService: familyService,
		badgeService:  badgeService,
	}
}

// Create handles POST /api/children
func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	var req schema.CreateChildRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	child, err := h.familyService.CreateChild(guardian.ID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, child)
}

// List handles GET /api/children
func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	children, err := h.familyService.ListChildren(guardian.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, children)
}

// Get handles GET /api/children/{id}
func (h *ChildHandler) Get(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	child, err := h.familyService.GetChild(guardian.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

// Update handles PATCH /api/children/{id}
func (h *ChildHandler) Update(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	var req schema.UpdateChildRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	child, err := h.familyService.UpdateChild(guardian.ID, r.PathValue("id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

// UpdateControls handles PATCH /api/children/{id}/controls
func (h *ChildHandler) UpdateControls(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	var req schema.UpdateControlsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	child, err := h.familyService.UpdateControls(guardian.ID, r.PathValue("id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

// Delete handles DELETE /api/children/{id}
func (h *ChildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	if err := h.familyService.DeleteChild(guardian.ID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "child deleted")
}

// Badges handles GET /api/children/{id}/badges
func (h *ChildHandler) Badges(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	child, err := h.familyService.GetChild(guardian.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	earned, err := h.badgeService.ListEarned(child.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, earned)
}
