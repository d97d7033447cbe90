package service

import (
	"context"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/repository"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/response"
)

// ProgressService persists in-flight test state so students can resume
// after a disconnect.
type ProgressService struct {
	progressRepo *repository.ProgressRepository
}

// NewProgressService creates a new ProgressService.
func NewProgressService(progressRepo *repository.ProgressRepository) *ProgressService {
	return &ProgressService{progressRepo: progressRepo}
}

// Get returns a student's saved state for a test, or pgx.ErrNoRows.
func (s *ProgressService) Get(ctx context.Context, studentID int, testID string) (*model.Progress, error) {
	return s.progressRepo.Get(ctx, studentID, testID)
}

// Save upserts a student's state for a test. The state blob is opaque to the
// server; clients own its shape.
func (s *ProgressService) Save(ctx context.Context, studentID int, testID string, req *model.SaveProgressRequest) (*model.Progress, error) {
	p := &model.Progress{
		StudentID: studentID,
		TestID:    testID,
		State:     req.State,
	}
	if err := s.progressRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns paginated progress snapshots for the admin view.
func (s *ProgressService) List(ctx context.Context, page, perPage int) ([]model.Progress, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	items, total, err := s.progressRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}

	return items, response.NewPagination(page, perPage, total), nil
}
