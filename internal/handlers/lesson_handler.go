package handlers

import (
	"net/http"

	"rafiq/internal/schema"
	"rafiq/internal/service"
)

// LessonHandler serves the lesson catalog
type LessonHandler struct {
	lessonService *service.LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(lessonService *service.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

// List handles GET /api/lessons?subject=&ageGroup=
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.lessonService.ListLessons(
		r.URL.Query().Get("subject"),
		r.URL.Query().Get("ageGroup"),
		true,
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lessons)
}

// Get handles GET /api/lessons/{id}
func (h *LessonHandler) Get(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.lessonService.GetLesson(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lesson)
}

// Create handles POST /api/lessons
func (h *LessonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req schema.CreateLessonRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	lesson, err := h.lessonService.CreateLesson(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, lesson)
}

// Publish handles POST /api/lessons/{id}/publish
func (h *LessonHandler) Publish(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.lessonService.PublishLesson(r.PathValue("id"), true)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lesson)
}
