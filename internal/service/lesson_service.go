package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rafiq/internal/models"
	"rafiq/internal/repository"
	"rafiq/internal/schema"
)

var ErrLessonNotFound = errors.New("lesson not found")

// LessonService handles the lesson catalog
type LessonService struct {
	lessonRepo *repository.LessonRepository
}

// NewLessonService creates a new lesson service
func NewLessonService(lessonRepo *repository.LessonRepository) *LessonService {
	return &LessonService{lessonRepo: lessonRepo}
}

// CreateLesson validates and stores a new lesson
func (s *LessonService) CreateLesson(req schema.CreateLessonRequest) (*models.Lesson, error) {
	newLesson, err := req.Validate()
	if err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		ID:                uuid.NewString(),
		Title:             newLesson.Title,
		Description:       newLesson.Description,
		Subject:           newLesson.Subject,
		AgeGroup:          newLesson.AgeGroup,
		Difficulty:        newLesson.Difficulty,
		Activities:        newLesson.Activities,
		EstimatedDuration: newLesson.EstimatedDuration,
		Objectives:        newLesson.Objectives,
		Keywords:          newLesson.Keywords,
		Prerequisites:     newLesson.Prerequisites,
		Unlocks:           newLesson.Unlocks,
		IsPublished:       newLesson.IsPublished,
		Tags:              newLesson.Tags,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.lessonRepo.Create(lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	return lesson, nil
}

// GetLesson retrieves a lesson by id
func (s *LessonService) GetLesson(id string) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up lesson: %w", err)
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}
	return lesson, nil
}

// ListLessons retrieves the catalog, optionally filtered by subject
// and age group. Families only ever see published lessons.
func (s *LessonService) ListLessons(subject, ageGroup string, publishedOnly bool) ([]*models.Lesson, error) {
	lessons, err := s.lessonRepo.List(repository.LessonFilter{
		Subject:       subject,
		AgeGroup:      ageGroup,
		PublishedOnly: publishedOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

// PublishLesson flips a lesson's publish flag
func (s *LessonService) PublishLesson(id string, published bool) (*models.Lesson, error) {
	lesson, err := s.GetLesson(id)
	if err != nil {
		return nil, err
	}
	if err := s.lessonRepo.SetPublished(id, published); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}
	lesson.IsPublished = published
	return lesson, nil
}
