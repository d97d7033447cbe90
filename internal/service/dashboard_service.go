package service

import (
	"context"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/repository"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/scoring"
)

// recentResultsWindow bounds how many submissions feed the grade distribution
// and average percentage so the dashboard stays cheap on large tables.
const recentResultsWindow = 200

// DashboardSummary is the admin landing page payload.
type DashboardSummary struct {
	Students          int            `json:"students"`
	Tests             int            `json:"tests"`
	Results           int            `json:"results"`
	InProgress        int            `json:"in_progress"`
	AveragePercentage float64        `json:"average_percentage"`
	GradeDistribution map[string]int `json:"grade_distribution"`
	SubmissionsByTest map[string]int `json:"submissions_by_test"`
}

// DashboardService aggregates counts and recent scoring statistics.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	resultRepo    *repository.ResultRepository
	testService   *TestService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	dashboardRepo *repository.DashboardRepository,
	resultRepo *repository.ResultRepository,
	testService *TestService,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		resultRepo:    resultRepo,
		testService:   testService,
	}
}

// GetSummary builds the full dashboard payload. Grade statistics run the
// normalization pipeline over the most recent submissions rather than
// trusting whatever clients stored.
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	students, tests, results, inProgress, err := s.dashboardRepo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	byTest, err := s.dashboardRepo.GetSubmissionCountsByTest(ctx, 10)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		Students:          students,
		Tests:             tests,
		Results:           results,
		InProgress:        inProgress,
		GradeDistribution: make(map[string]int),
		SubmissionsByTest: byTest,
	}

	recent, err := s.resultRepo.Recent(ctx, recentResultsWindow)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return summary, nil
	}

	defs, err := s.testService.AllDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	var totalPct float64
	for _, rec := range recent {
		b := scoring.ComputeBreakdown(rec, defs)
		totalPct += b.Percentage
		summary.GradeDistribution[b.Grade]++
	}
	summary.AveragePercentage = totalPct / float64(len(recent))

	return summary, nil
}
