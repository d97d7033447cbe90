package service

import (
	"context"
	"fmt"
	"time"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/config"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/repository"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/response"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/scoring"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ResultRow is one admin-facing results table row: the raw record resolved
// against the student directory plus its freshly computed breakdown.
type ResultRow struct {
	ID           string            `json:"id"`
	StudentName  string            `json:"student_name"`
	StudentEmail string            `json:"student_email"`
	TestTitle    string            `json:"test_title"`
	Breakdown    scoring.Breakdown `json:"breakdown"`
}

// ResultService handles submission records and their normalized score views.
type ResultService struct {
	resultRepo     *repository.ResultRepository
	progressRepo   *repository.ProgressRepository
	testService    *TestService
	studentService *StudentService
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewResultService creates a new ResultService.
func NewResultService(
	resultRepo *repository.ResultRepository,
	progressRepo *repository.ProgressRepository,
	testService *TestService,
	studentService *StudentService,
	rdb *redis.Client,
	log zerolog.Logger,
) *ResultService {
	return &ResultService{
		resultRepo:     resultRepo,
		progressRepo:   progressRepo,
		testService:    testService,
		studentService: studentService,
		rdb:            rdb,
		log:            log.With().Str("component", "result_service").Logger(),
	}
}

// Submit stores a raw submission record, clears the student's saved progress
// for that test, and queues the breakdown computation for the live monitor.
func (s *ResultService) Submit(ctx context.Context, studentID int, req *model.SubmitResultRequest) (*model.SubmissionRecord, error) {
	rec := &model.SubmissionRecord{
		// New IDs keep the legacy minting convention so duration recovery
		// keeps working for records whose startedAt goes missing downstream.
		ID:              fmt.Sprintf("result_%d_%d", time.Now().UnixMilli(), studentID),
		StudentID:       studentID,
		TestID:          req.TestID,
		TestTitle:       req.TestTitle,
		StartedAt:       req.StartedAt,
		CompletedAt:     req.CompletedAt,
		SubmittedAt:     req.SubmittedAt,
		EndedAt:         req.EndedAt,
		DurationSeconds: req.DurationSeconds,
		Scores:          req.Scores,
		ModuleScores:    req.ModuleScores,
		TotalScore:      req.TotalScore,
		Percentage:      req.Percentage,
	}

	if student, err := s.studentService.GetByID(ctx, studentID); err == nil {
		rec.StudentEmail = student.Email
	}

	if err := s.resultRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	if rec.TestID != "" {
		if err := s.progressRepo.Delete(ctx, studentID, rec.TestID); err != nil {
			s.log.Warn().Err(err).Str("result_id", rec.ID).Msg("Failed to clear progress after submission")
		}
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.BreakdownQueue, rec.ID).Err(); err != nil {
		// Non-fatal: the record is stored; only the live monitor lags.
		s.log.Warn().Err(err).Str("result_id", rec.ID).Msg("Failed to enqueue breakdown job")
	}

	return rec, nil
}

// List returns paginated result rows with per-row breakdowns.
func (s *ResultService) List(ctx context.Context, testID *string, studentID *int, page, perPage int) ([]ResultRow, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	records, total, err := s.resultRepo.ListPaginated(ctx, testID, studentID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.buildRows(ctx, records)
	if err != nil {
		return nil, nil, err
	}

	return rows, response.NewPagination(page, perPage, total), nil
}

// ListAllRows returns every result row, used by the exporters.
func (s *ResultService) ListAllRows(ctx context.Context, testID *string) ([]ResultRow, error) {
	records, err := s.resultRepo.ListAll(ctx, testID)
	if err != nil {
		return nil, err
	}
	return s.buildRows(ctx, records)
}

// Get returns one result row by record ID.
func (s *ResultService) Get(ctx context.Context, id string) (*ResultRow, error) {
	rec, err := s.resultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.buildRows(ctx, []model.SubmissionRecord{*rec})
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// Delete removes a submission record and its cached breakdown.
func (s *ResultService) Delete(ctx context.Context, id string) error {
	if err := s.resultRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, config.CacheKey.ResultBreakdownKey(id)).Err(); err != nil {
		s.log.Warn().Err(err).Str("result_id", id).Msg("Failed to drop cached breakdown")
	}
	return nil
}

func (s *ResultService) buildRows(ctx context.Context, records []model.SubmissionRecord) ([]ResultRow, error) {
	defs, err := s.testService.AllDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	directory, err := s.studentService.Directory(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ResultRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, buildRow(rec, defs, directory))
	}
	return rows, nil
}

func buildRow(rec model.SubmissionRecord, defs []model.TestDefinition, directory map[int]model.User) ResultRow {
	row := ResultRow{
		ID:           rec.ID,
		StudentEmail: rec.StudentEmail,
		TestTitle:    rec.TestTitle,
		Breakdown:    scoring.ComputeBreakdown(rec, defs),
	}

	if student, ok := directory[rec.StudentID]; ok {
		row.StudentName = student.Name
		if row.StudentEmail == "" {
			row.StudentEmail = student.Email
		}
	}

	if row.TestTitle == "" {
		for _, def := range defs {
			if def.ID == rec.TestID {
				row.TestTitle = def.Title
				break
			}
		}
	}

	return row
}
