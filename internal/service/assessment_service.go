package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"rafiq/internal/agent"
	"rafiq/internal/models"
	"rafiq/internal/repository"
)

// AssessmentService derives skill assessments from completed sessions
type AssessmentService struct {
	assessmentRepo *repository.AssessmentRepository
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(assessmentRepo *repository.AssessmentRepository) *AssessmentService {
	return &AssessmentService{assessmentRepo: assessmentRepo}
}

// GenerateForSession produces and stores a rule-based assessment for a
// completed session. The agent persona's focus areas become the
// assessed skills.
func (s *AssessmentService) GenerateForSession(sess *models.Session) (*models.AssessmentResult, error) {
	if sess.FinalScore == nil {
		return nil, fmt.Errorf("session %s has no final score", sess.ID)
	}
	overall := *sess.FinalScore

	skills := []string{"participation"}
	if persona := agent.PersonaByID(sess.AgentID); persona != nil {
		skills = persona.FocusAreas
	}

	exchanges := len(sess.Messages) / 2
	participation := exchanges
	if participation > 10 {
		participation = 10
	}
	hintsPenalty := sess.Progress.HintsUsed * 2
	if hintsPenalty > 20 {
		hintsPenalty = 20
	}

	skillScore := overall + participation - hintsPenalty
	if skillScore > 100 {
		skillScore = 100
	}
	if skillScore < 0 {
		skillScore = 0
	}

	result := &models.AssessmentResult{
		ID:                  uuid.NewString(),
		SessionID:           sess.ID,
		ChildID:             sess.ChildID,
		Subject:             sess.Subject,
		SkillScores:         map[string]int{},
		OverallScore:        overall,
		Strengths:           []string{},
		AreasForImprovement: []string{},
		Recommendations:     []string{},
		MasteredSkills:      []string{},
		StrugglingSkills:    []string{},
		AssessmentMethod:    models.AssessmentRuleBased,
		CreatedAt:           time.Now().UTC(),
	}

	for _, skill := range skills {
		result.SkillScores[skill] = skillScore
		switch {
		case skillScore >= 90:
			result.MasteredSkills = append(result.MasteredSkills, skill)
			result.Strengths = append(result.Strengths, skill)
		case skillScore >= 70:
			result.Strengths = append(result.Strengths, skill)
		case skillScore < 50:
			result.StrugglingSkills = append(result.StrugglingSkills, skill)
			result.AreasForImprovement = append(result.AreasForImprovement, skill)
		default:
			result.AreasForImprovement = append(result.AreasForImprovement, skill)
		}
	}

	switch {
	case overall >= 80:
		result.Recommendations = append(result.Recommendations, "Ready for more challenging lessons in "+string(sess.Subject))
	case overall >= 50:
		result.Recommendations = append(result.Recommendations, "Keep practicing "+string(sess.Subject)+" at the current level")
	default:
		result.Recommendations = append(result.Recommendations, "Revisit earlier lessons in "+string(sess.Subject)+" to build confidence")
	}
	if sess.Progress.HintsUsed > 5 {
		result.Recommendations = append(result.Recommendations, "Try shorter sessions with fewer hints")
	}

	if err := s.assessmentRepo.Create(result); err != nil {
		return nil, fmt.Errorf("failed to store assessment: %w", err)
	}
	return result, nil
}

// GetBySession retrieves the assessment produced for a session
func (s *AssessmentService) GetBySession(sessionID string) (*models.AssessmentResult, error) {
	result, err := s.assessmentRepo.GetBySession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up assessment: %w", err)
	}
	return result, nil
}

// ListByChild retrieves a child's recent assessments
func (s *AssessmentService) ListByChild(childID string, limit int) ([]*models.AssessmentResult, error) {
	results, err := s.assessmentRepo.ListByChild(childID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return results, nil
}
