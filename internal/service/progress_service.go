package service

import (
	"fmt"
	"math"
	"time"

	"rafiq/internal/models"
	"rafiq/internal/repository"
)

// ProgressService computes on-demand progress reports and dashboard
// aggregates. Nothing here is persisted.
type ProgressService struct {
	childRepo   *repository.ChildRepository
	sessionRepo *repository.SessionRepository
	badgeRepo   *repository.BadgeRepository
}

// NewProgressService creates a new progress service
func NewProgressService(childRepo *repository.ChildRepository, sessionRepo *repository.SessionRepository, badgeRepo *repository.BadgeRepository) *ProgressService {
	return &ProgressService{
		childRepo:   childRepo,
		sessionRepo: sessionRepo,
		badgeRepo:   badgeRepo,
	}
}

// Report aggregates a child's learning activity over the trailing
// number of days
func (s *ProgressService) Report(child *models.Child, days int) (*models.ProgressReport, error) {
	if days <= 0 {
		days = 30
	}
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -days)

	sessions, err := s.sessionRepo.ListByChildInRange(child.ID, from, now.Add(time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	earned, err := s.badgeRepo.ListEarnedInRange(child.ID, from, now.Add(time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to list earned badges: %w", err)
	}

	report := &models.ProgressReport{
		ChildID:               child.ID,
		StartDate:             from,
		EndDate:               now,
		SubjectProgress:       map[models.Subject]*models.SubjectProgress{},
		BadgesEarned:          earned,
		ParentRecommendations: []string{},
	}

	scoreSum := 0
	scoredSessions := 0
	for _, sess := range sessions {
		report.TotalSessions++
		report.TotalTimeSpent += sess.Progress.TimeSpent
		report.PointsEarned += sess.PointsEarned

		sp, ok := report.SubjectProgress[sess.Subject]
		if !ok {
			sp = &models.SubjectProgress{LessonsCompleted: []string{}}
			report.SubjectProgress[sess.Subject] = sp
		}
		sp.TimeSpent += sess.Progress.TimeSpent

		if sess.Status == models.SessionCompleted && sess.FinalScore != nil {
			scoreSum += *sess.FinalScore
			scoredSessions++
			sp.SessionsCompleted++
			sp.AverageScore += float64(*sess.FinalScore)
			sp.LessonsCompleted = appendUnique(sp.LessonsCompleted, sess.LessonID)
		}
	}
	if scoredSessions > 0 {
		report.AverageScore = round2(float64(scoreSum) / float64(scoredSessions))
	}
	for _, sp := range report.SubjectProgress {
		if sp.SessionsCompleted > 0 {
			sp.AverageScore = round2(sp.AverageScore / float64(sp.SessionsCompleted))
		}
	}

	report.ParentRecommendations = recommendationsFor(child, report)
	return report, nil
}

// ChildSummary is one child's entry in the dashboard overview
type ChildSummary struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"firstName"`
	AgeGroup      string     `json:"ageGroup"`
	TotalPoints   int        `json:"totalPoints"`
	CurrentStreak int        `json:"currentStreak"`
	TotalSessions int        `json:"totalSessions"`
	LastActivity  *time.Time `json:"lastActivity,omitempty"`
}

// DashboardOverview is the guardian dashboard's headline metrics
type DashboardOverview struct {
	TotalChildren     int            `json:"totalChildren"`
	TotalSessions     int            `json:"totalSessions"`
	CompletedSessions int            `json:"completedSessions"`
	TotalPoints       int            `json:"totalPoints"`
	AverageEngagement float64        `json:"averageEngagement"`
	Children          []ChildSummary `json:"children"`
}

// Overview computes the guardian dashboard: per-child summaries plus
// aggregate counts and a numeric engagement average over the last week
func (s *ProgressService) Overview(guardianID string) (*DashboardOverview, error) {
	children, err := s.childRepo.ListByGuardian(guardianID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}

	overview := &DashboardOverview{Children: []ChildSummary{}}
	overview.TotalChildren = len(children)

	now := time.Now().UTC()
	weekAgo := now.AddDate(0, 0, -7)
	engagementSum := 0
	engagementCount := 0

	for _, child := range children {
		sessions, err := s.sessionRepo.ListByChild(child.ID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}

		overview.TotalSessions += len(sessions)
		overview.TotalPoints += child.TotalPoints
		for _, sess := range sessions {
			if sess.Status == models.SessionCompleted {
				overview.CompletedSessions++
			}
			if sess.StartTime.After(weekAgo) {
				if level := engagementValue(sess.Progress.EngagementLevel); level > 0 {
					engagementSum += level
					engagementCount++
				}
			}
		}

		overview.Children = append(overview.Children, ChildSummary{
			ID:            child.ID,
			FirstName:     child.FirstName,
			AgeGroup:      string(child.AgeGroup),
			TotalPoints:   child.TotalPoints,
			CurrentStreak: child.CurrentStreak,
			TotalSessions: len(sessions),
			LastActivity:  child.LastActivity,
		})
	}

	if engagementCount > 0 {
		overview.AverageEngagement = round2(float64(engagementSum) / float64(engagementCount))
	}
	return overview, nil
}

func engagementValue(level string) int {
	switch level {
	case "low":
		return 1
	case "medium":
		return 2
	case "high":
		return 3
	}
	return 0
}

func recommendationsFor(child *models.Child, report *models.ProgressReport) []string {
	recs := []string{}
	if report.TotalSessions == 0 {
		recs = append(recs, fmt.Sprintf("%s has not practiced recently. A short session is a great way to restart.", child.FirstName))
		return recs
	}
	if report.AverageScore >= 80 {
		recs = append(recs, fmt.Sprintf("%s is doing great. Consider unlocking more advanced lessons.", child.FirstName))
	} else if report.AverageScore < 50 {
		recs = append(recs, fmt.Sprintf("%s may benefit from revisiting earlier lessons together.", child.FirstName))
	}
	if report.TotalTimeSpent > child.Controls.DailyTimeLimit*7 {
		recs = append(recs, "Consider reviewing the daily time limit for a healthier balance.")
	}
	return recs
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
