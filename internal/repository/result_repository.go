package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResultRepository handles the results collection. Each row keeps the raw
// submission document verbatim in JSONB next to a few extracted columns used
// for filtering; the document is what the scoring engine consumes.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Create stores a submission record.
func (r *ResultRepository) Create(ctx context.Context, rec *model.SubmissionRecord) error {
	document, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	var studentID *int
	if rec.StudentID != 0 {
		studentID = &rec.StudentID
	}
	var testID *string
	if rec.TestID != "" {
		testID = &rec.TestID
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO results (id, student_id, test_id, document)
		 VALUES ($1, $2, $3, $4)`,
		rec.ID, studentID, testID, document,
	)
	return err
}

// GetByID retrieves one submission record.
func (r *ResultRepository) GetByID(ctx context.Context, id string) (*model.SubmissionRecord, error) {
	var document []byte
	err := r.pool.QueryRow(ctx,
		`SELECT document FROM results WHERE id = $1`, id,
	).Scan(&document)
	if err != nil {
		return nil, err
	}
	return decodeSubmission(document)
}

// ListPaginated retrieves submission records, newest first, optionally
// filtered by test and/or student.
func (r *ResultRepository) ListPaginated(ctx context.Context, testID *string, studentID *int, limit, offset int) ([]model.SubmissionRecord, int, error) {
	where := ` WHERE ($1::text IS NULL OR test_id = $1)
	            AND ($2::int IS NULL OR student_id = $2)`

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM results`+where, testID, studentID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT document FROM results`+where+
			` ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		testID, studentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records, err := collectSubmissions(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListAll retrieves every submission record, oldest first. Used by the CSV
// and XLSX exporters.
func (r *ResultRepository) ListAll(ctx context.Context, testID *string) ([]model.SubmissionRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT document FROM results
		 WHERE ($1::text IS NULL OR test_id = $1)
		 ORDER BY created_at ASC`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

// Recent retrieves the newest n submission records for the dashboard.
func (r *ResultRepository) Recent(ctx context.Context, n int) ([]model.SubmissionRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT document FROM results ORDER BY created_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

// Delete removes a submission record by ID.
func (r *ResultRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM results WHERE id = $1`, id)
	return err
}

type documentRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectSubmissions(rows documentRows) ([]model.SubmissionRecord, error) {
	var records []model.SubmissionRecord
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, err
		}
		rec, err := decodeSubmission(document)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func decodeSubmission(document []byte) (*model.SubmissionRecord, error) {
	rec := &model.SubmissionRecord{}
	if err := json.Unmarshal(document, rec); err != nil {
		return nil, fmt.Errorf("decode submission document: %w", err)
	}
	return rec, nil
}
