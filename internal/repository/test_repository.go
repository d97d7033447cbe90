package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateTestTitle = errors.New("test with this title already exists")

// TestRepository handles the tests collection. The module structure is stored
// as a JSONB document so historical definitions round-trip untouched.
type TestRepository struct {
	pool *pgxpool.Pool
}

// NewTestRepository creates a new TestRepository.
func NewTestRepository(pool *pgxpool.Pool) *TestRepository {
	return &TestRepository{pool: pool}
}

// GetByID retrieves a test definition by ID.
func (r *TestRepository) GetByID(ctx context.Context, id string) (*model.TestDefinition, error) {
	var (
		def     model.TestDefinition
		modules []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, total_marks, modules, created_at, updated_at
		 FROM tests WHERE id = $1`, id,
	).Scan(&def.ID, &def.Title, &def.TotalMarks, &modules, &def.CreatedAt, &def.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalModules(modules, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// ListAll retrieves every test definition; the set is small and the scoring
// engine needs all of them to resolve a submission.
func (r *TestRepository) ListAll(ctx context.Context) ([]model.TestDefinition, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, total_marks, modules, created_at, updated_at
		 FROM tests ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []model.TestDefinition
	for rows.Next() {
		var (
			def     model.TestDefinition
			modules []byte
		)
		if err := rows.Scan(&def.ID, &def.Title, &def.TotalMarks, &modules, &def.CreatedAt, &def.UpdatedAt); err != nil {
			return nil, err
		}
		if err := unmarshalModules(modules, &def); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// Create inserts a new test definition.
func (r *TestRepository) Create(ctx context.Context, def *model.TestDefinition) error {
	modules, err := json.Marshal(def.Modules)
	if err != nil {
		return err
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO tests (id, title, total_marks, modules)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		def.ID, def.Title, def.TotalMarks, modules,
	).Scan(&def.CreatedAt, &def.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateTestTitle
		}
		return err
	}
	return nil
}

// Update replaces a test definition's title, denominator and module document.
func (r *TestRepository) Update(ctx context.Context, def *model.TestDefinition) error {
	modules, err := json.Marshal(def.Modules)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx,
		`UPDATE tests SET title = $1, total_marks = $2, modules = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		def.Title, def.TotalMarks, modules, def.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateTestTitle
		}
		return err
	}
	return nil
}

// Delete removes a test definition by ID.
func (r *TestRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tests WHERE id = $1`, id)
	return err
}

func unmarshalModules(raw []byte, def *model.TestDefinition) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, &def.Modules)
}
