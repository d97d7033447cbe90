package service

import (
	"context"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/repository"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/response"
	"golang.org/x/crypto/bcrypt"
)

// StudentService handles student directory business logic.
type StudentService struct {
	userRepo *repository.UserRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(userRepo *repository.UserRepository) *StudentService {
	return &StudentService{userRepo: userRepo}
}

// GetByEmail retrieves a student by their email.
func (s *StudentService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListStudents retrieves students with pagination.
func (s *StudentService) ListStudents(ctx context.Context, page, perPage int) ([]model.User, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	students, total, err := s.userRepo.ListByRole(ctx, model.RoleStudent, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	if students == nil {
		students = []model.User{}
	}

	return students, response.NewPagination(page, perPage, total), nil
}

// Directory returns the id → student map used to resolve names and emails on
// result rows and exports.
func (s *StudentService) Directory(ctx context.Context) (map[int]model.User, error) {
	return s.userRepo.StudentDirectory(ctx)
}

// Create inserts a new student with a hashed password.
func (s *StudentService) Create(ctx context.Context, student *model.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(student.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	student.PasswordHash = string(hashed)
	student.Role = model.RoleStudent
	return s.userRepo.Create(ctx, student)
}

// Update modifies a student's details. Updates password if provided.
func (s *StudentService) Update(ctx context.Context, student *model.User, updatePassword bool) error {
	if err := s.userRepo.Update(ctx, student); err != nil {
		return err
	}

	if updatePassword && student.PasswordHash != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(student.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		return s.userRepo.UpdatePassword(ctx, student.ID, string(hashed))
	}

	return nil
}

// Delete removes a student by ID.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	return s.userRepo.Delete(ctx, id)
}
