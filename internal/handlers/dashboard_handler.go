package handlers

import (
	"net/http"
	"strconv"

	"rafiq/internal/service"
)

// DashboardHandler serves guardian dashboard and progress endpoints
type DashboardHandler struct {
	familyService     *service.FamilyService
	progressService   *service.ProgressService
	assessmentService *service.AssessmentService
	badgeService      *service.BadgeService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	familyService *service.FamilyService,
	progressService *service.ProgressService,
	assessmentService *service.AssessmentService,
	badgeService *service.BadgeService,
) *DashboardHandler {
	return &DashboardHandler{
		familyService:     familyService,
		progressService:   progressService,
		assessmentService: assessmentService,
		badgeService:      badgeService,
	}
}

// Overview handles GET /api/dashboard/overview
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	overview, err := h.progressService.Overview(guardian.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// Progress handles GET /api/children/{id}/progress?days=N
func (h *DashboardHandler) Progress(w http.ResponseWriter, r *http.Request) {
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

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}

	report, err := h.progressService.Report(child, days)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Assessments handles GET /api/children/{id}/assessments
func (h *DashboardHandler) Assessments(w http.ResponseWriter, r *http.Request) {
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

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	results, err := h.assessmentService.ListByChild(child.ID, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// Badges handles GET /api/badges
func (h *DashboardHandler) Badges(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.badgeService.Catalog()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, catalog)
}
