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

var ErrChildNotFound = errors.New("child not found")

// FamilyService handles guardian profiles and child management
type FamilyService struct {
	guardianRepo *repository.GuardianRepository
	childRepo    *repository.ChildRepository
}

// NewFamilyService creates a new family service
func NewFamilyService(guardianRepo *repository.GuardianRepository, childRepo *repository.ChildRepository) *FamilyService {
	return &FamilyService{
		guardianRepo: guardianRepo,
		childRepo:    childRepo,
	}
}

// UpdateGuardian applies a partial profile update
func (s *FamilyService) UpdateGuardian(guardianID string, req schema.UpdateGuardianRequest) (*models.Guardian, error) {
	patch, err := req.Validate()
	if err != nil {
		return nil, err
	}

	guardian, err := s.guardianRepo.GetByID(guardianID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up guardian: %w", err)
	}
	if guardian == nil {
		return nil, ErrGuardianNotFound
	}

	if patch.FirstName != nil {
		guardian.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		guardian.LastName = *patch.LastName
	}
	if patch.PreferredLanguage != nil {
		guardian.PreferredLanguage = *patch.PreferredLanguage
	}
	if patch.Timezone != nil {
		guardian.Timezone = *patch.Timezone
	}

	if err := s.guardianRepo.UpdateProfile(guardian); err != nil {
		return nil, fmt.Errorf("failed to update guardian: %w", err)
	}
	return guardian, nil
}

// DeactivateGuardian soft-deletes a guardian account
func (s *FamilyService) DeactivateGuardian(guardianID string) error {
	if err := s.guardianRepo.Deactivate(guardianID); err != nil {
		return fmt.Errorf("failed to deactivate guardian: %w", err)
	}
	return nil
}

// CreateChild registers a new child profile under a guardian
func (s *FamilyService) CreateChild(guardianID string, req schema.CreateChildRequest) (*models.Child, error) {
	now := time.Now().UTC()
	reg, err := req.Validate(now)
	if err != nil {
		return nil, err
	}

	child := &models.Child{
		ID:                uuid.NewString(),
		GuardianID:        guardianID,
		FirstName:         reg.FirstName,
		LastName:          reg.LastName,
		DateOfBirth:       reg.DateOfBirth,
		AgeGroup:          reg.AgeGroup,
		PreferredLanguage: reg.PreferredLanguage,
		LearningLevel:     reg.LearningLevel,
		Interests:         reg.Interests,
		SpecialNeeds:      reg.SpecialNeeds,
		IsActive:          true,
		VoiceEnabled:      reg.VoiceEnabled,
		ChatEnabled:       reg.ChatEnabled,
		Controls:          reg.Controls,
		CreatedAt:         now,
	}
	if err := s.childRepo.Create(child); err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}
	return child, nil
}

// ListChildren retrieves all children of a guardian
func (s *FamilyService) ListChildren(guardianID string) ([]*models.Child, error) {
	children, err := s.childRepo.ListByGuardian(guardianID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	return children, nil
}

// GetChild retrieves one child, enforcing guardian ownership. A child
// owned by another guardian is indistinguishable from a missing one.
func (s *FamilyService) GetChild(guardianID, childID string) (*models.Child, error) {
	child, err := s.childRepo.GetByID(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up child: %w", err)
	}
	if child == nil || child.GuardianID != guardianID {
		return nil, ErrChildNotFound
	}
	return child, nil
}

// UpdateChild applies a partial profile update to an owned child
func (s *FamilyService) UpdateChild(guardianID, childID string, req schema.UpdateChildRequest) (*models.Child, error) {
	patch, err := req.Validate(time.Now().UTC())
	if err != nil {
		return nil, err
	}

	child, err := s.GetChild(guardianID, childID)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		child.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		child.LastName = *patch.LastName
	}
	if patch.DateOfBirth != nil {
		child.DateOfBirth = *patch.DateOfBirth
		child.AgeGroup = *patch.AgeGroup
	}
	if patch.PreferredLanguage != nil {
		child.PreferredLanguage = *patch.PreferredLanguage
	}
	if patch.LearningLevel != nil {
		child.LearningLevel = *patch.LearningLevel
	}
	if patch.Interests != nil {
		child.Interests = *patch.Interests
	}
	if patch.SpecialNeeds != nil {
		child.SpecialNeeds = *patch.SpecialNeeds
	}
	if patch.IsActive != nil {
		child.IsActive = *patch.IsActive
	}
	if patch.VoiceEnabled != nil {
		child.VoiceEnabled = *patch.VoiceEnabled
	}
	if patch.ChatEnabled != nil {
		child.ChatEnabled = *patch.ChatEnabled
	}

	if err := s.childRepo.Update(child); err != nil {
		return nil, fmt.Errorf("failed to update child: %w", err)
	}
	return child, nil
}

// UpdateControls applies a partial parental-controls update
func (s *FamilyService) UpdateControls(guardianID, childID string, req schema.UpdateControlsRequest) (*models.Child, error) {
	patch, err := req.Validate()
	if err != nil {
		return nil, err
	}

	child, err := s.GetChild(guardianID, childID)
	if err != nil {
		return nil, err
	}

	if patch.DailyTimeLimit != nil {
		child.Controls.DailyTimeLimit = *patch.DailyTimeLimit
	}
	if patch.EnabledSubjects != nil {
		child.Controls.EnabledSubjects = *patch.EnabledSubjects
	}
	if patch.VoiceRecordingAllowed != nil {
		child.Controls.VoiceRecordingAllowed = *patch.VoiceRecordingAllowed
	}
	if patch.DataRetentionDays != nil {
		child.Controls.DataRetentionDays = *patch.DataRetentionDays
	}

	if err := s.childRepo.UpdateControls(child); err != nil {
		return nil, fmt.Errorf("failed to update controls: %w", err)
	}
	return child, nil
}

// DeleteChild removes an owned child profile and, via cascade, all of
// the child's sessions, messages and assessments
func (s *FamilyService) DeleteChild(guardianID, childID string) error {
	if _, err := s.GetChild(guardianID, childID); err != nil {
		return err
	}
	if err := s.childRepo.Delete(childID); err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}
