package service

import (
	"fmt"
	"log"
	"time"

	"rafiq/internal/models"
	"rafiq/internal/repository"
)

// BadgeService manages the badge catalog and awards achievements
type BadgeService struct {
	badgeRepo *repository.BadgeRepository
}

// NewBadgeService creates a new badge service
func NewBadgeService(badgeRepo *repository.BadgeRepository) *BadgeService {
	return &BadgeService{badgeRepo: badgeRepo}
}

// defaultBadges is the built-in catalog seeded at startup
var defaultBadges = []models.Badge{
	{
		ID:          "first-steps",
		Name:        "First Steps",
		Description: "Complete your first learning session",
		Criteria:    models.BadgeCriteria{Type: models.CriteriaSessionsCompleted, Value: 1},
		Rarity:      "common",
		Points:      10,
	},
	{
		ID:          "dedicated-learner",
		Name:        "Dedicated Learner",
		Description: "Complete ten learning sessions",
		Criteria:    models.BadgeCriteria{Type: models.CriteriaSessionsCompleted, Value: 10},
		Rarity:      "rare",
		Points:      25,
	},
	{
		ID:          "young-scholar",
		Name:        "Young Scholar",
		Description: "Complete fifty learning sessions",
		Criteria:    models.BadgeCriteria{Type: models.CriteriaSessionsCompleted, Value: 50},
		Rarity:      "epic",
		Points:      50,
	},
	{
		ID:          "high-achiever",
		Name:        "High Achiever",
		Description: "Finish a session with a score of 90 or more",
		Criteria:    models.BadgeCriteria{Type: models.CriteriaScoreThreshold, Value: 90},
		Rarity:      "rare",
		Points:      20,
	},
	{
		ID:          "perfect-score",
		Name:        "Perfect Score",
		Description: "Finish a session with a perfect score",
		Criteria:    models.BadgeCriteria{Type: models.CriteriaSkillMastery, Value: 100},
		Rarity:      "epic",
		Points:      30,
	},
	{
		ID:          "week-streak",
		Name:        "Week Warrior",
		Description: "Learn every day for a whole week",
		Criteria:    models.BadgeCriteria{Type: models.CriteriaStreak, Value: 7, Timeframe: "week"},
		Rarity:      "rare",
		Points:      25,
	},
	{
		ID:          "month-streak",
		Name:        "Monthly Master",
		Description: "Learn every day for a whole month",
		Criteria:    models.BadgeCriteria{Type: models.CriteriaStreak, Value: 30, Timeframe: "month"},
		Rarity:      "legendary",
		Points:      100,
	},
}

// Seed loads the built-in badge catalog. Safe to run on every startup.
func (s *BadgeService) Seed() error {
	for i := range defaultBadges {
		if err := s.badgeRepo.Upsert(&defaultBadges[i]); err != nil {
			return fmt.Errorf("failed to seed badge %s: %w", defaultBadges[i].ID, err)
		}
	}
	return nil
}

// Catalog returns all badge definitions
func (s *BadgeService) Catalog() ([]*models.Badge, error) {
	badges, err := s.badgeRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	return badges, nil
}

// ListEarned returns a child's earned badges
func (s *BadgeService) ListEarned(childID string) ([]models.EarnedBadge, error) {
	earned, err := s.badgeRepo.ListEarned(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to list earned badges: %w", err)
	}
	return earned, nil
}

// EvaluateOnCompletion checks every badge criterion against a freshly
// completed session and awards what was earned. Returns the newly
// awarded badge ids and their bonus points. Evaluation failures only
// cost badges, never the session.
func (s *BadgeService) EvaluateOnCompletion(child *models.Child, sess *models.Session, completedCount, currentStreak int, now time.Time) ([]string, int) {
	badges, err := s.badgeRepo.List()
	if err != nil {
		log.Printf("Failed to load badge catalog: %v", err)
		return []string{}, 0
	}

	final := 0
	if sess.FinalScore != nil {
		final = *sess.FinalScore
	}

	awarded := []string{}
	bonus := 0
	for _, b := range badges {
		if b.Subject != "" && b.Subject != sess.Subject {
			continue
		}

		met := false
		switch b.Criteria.Type {
		case models.CriteriaSessionsCompleted:
			met = completedCount >= b.Criteria.Value
		case models.CriteriaScoreThreshold, models.CriteriaSkillMastery:
			met = final >= b.Criteria.Value
		case models.CriteriaStreak:
			met = currentStreak >= b.Criteria.Value
		}
		if !met {
			continue
		}

		ok, err := s.badgeRepo.Award(child.ID, b.ID, now)
		if err != nil {
			log.Printf("Failed to award badge %s to child %s: %v", b.ID, child.ID, err)
			continue
		}
		if ok {
			awarded = append(awarded, b.ID)
			bonus += b.Points
			log.Printf("Badge %s awarded to child %s", b.ID, child.ID)
		}
	}
	return awarded, bonus
}
