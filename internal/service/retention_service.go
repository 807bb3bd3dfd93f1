package service

import (
	"fmt"
	"log"
	"time"

	"rafiq/internal/repository"
)

// RetentionService purges learning data past each child's configured
// retention window. Profiles and earned badges are kept; session logs
// and assessments are deleted.
type RetentionService struct {
	childRepo      *repository.ChildRepository
	sessionRepo    *repository.SessionRepository
	assessmentRepo *repository.AssessmentRepository
}

// NewRetentionService creates a new retention service
func NewRetentionService(childRepo *repository.ChildRepository, sessionRepo *repository.SessionRepository, assessmentRepo *repository.AssessmentRepository) *RetentionService {
	return &RetentionService{
		childRepo:      childRepo,
		sessionRepo:    sessionRepo,
		assessmentRepo: assessmentRepo,
	}
}

// PurgeExpired deletes every child's finished sessions and assessments
// older than that child's dataRetentionDays. Returns the number of
// sessions removed.
func (s *RetentionService) PurgeExpired(now time.Time) (int64, error) {
	children, err := s.childRepo.ListAll()
	if err != nil {
		return 0, fmt.Errorf("failed to list children: %w", err)
	}

	var total int64
	for _, child := range children {
		days := child.Controls.DataRetentionDays
		if days <= 0 {
			continue
		}
		cutoff := now.AddDate(0, 0, -days)

		removed, err := s.sessionRepo.DeleteOlderThan(child.ID, cutoff)
		if err != nil {
			log.Printf("Retention purge failed for child %s: %v", child.ID, err)
			continue
		}
		if _, err := s.assessmentRepo.DeleteOlderThan(child.ID, cutoff); err != nil {
			log.Printf("Assessment purge failed for child %s: %v", child.ID, err)
		}
		total += removed
	}

	if total > 0 {
		log.Printf("Retention purge removed %d sessions", total)
	}
	return total, nil
}
