package repository

import (
	"context"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProgressRepository handles the progress collection.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// Get retrieves a student's saved progress for one test.
func (r *ProgressRepository) Get(ctx context.Context, studentID int, testID string) (*model.Progress, error) {
	p := &model.Progress{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, test_id, state, updated_at
		 FROM progress WHERE student_id = $1 AND test_id = $2`,
		studentID, testID,
	).Scan(&p.ID, &p.StudentID, &p.TestID, &p.State, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Upsert saves a student's progress, replacing any previous state.
func (r *ProgressRepository) Upsert(ctx context.Context, p *model.Progress) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO progress (student_id, test_id, state)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (student_id, test_id)
		 DO UPDATE SET state = EXCLUDED.state, updated_at = CURRENT_TIMESTAMP
		 RETURNING id, updated_at`,
		p.StudentID, p.TestID, p.State,
	).Scan(&p.ID, &p.UpdatedAt)
}

// ListPaginated retrieves progress entries, most recently updated first.
func (r *ProgressRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Progress, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM progress`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, test_id, state, updated_at
		 FROM progress ORDER BY updated_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []model.Progress
	for rows.Next() {
		var p model.Progress
		if err := rows.Scan(&p.ID, &p.StudentID, &p.TestID, &p.State, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, p)
	}
	return entries, total, rows.Err()
}

// Delete removes a student's progress for one test, typically after the
// submission record lands.
func (r *ProgressRepository) Delete(ctx context.Context, studentID int, testID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM progress WHERE student_id = $1 AND test_id = $2`,
		studentID, testID)
	return err
}
