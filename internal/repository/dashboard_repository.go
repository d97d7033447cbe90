package repository

import (
	"context"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository aggregates counts for the admin dashboard.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts returns the headline counts in one round trip.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (students, tests, results, inProgress int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = $1),
			(SELECT COUNT(*) FROM tests),
			(SELECT COUNT(*) FROM results),
			(SELECT COUNT(*) FROM progress)
	`, model.RoleStudent).Scan(&students, &tests, &results, &inProgress)
	return
}

// GetSubmissionCountsByTest returns submission counts per test, highest first.
func (r *DashboardRepository) GetSubmissionCountsByTest(ctx context.Context, limit int) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.title, COUNT(res.id)
		FROM tests t
		LEFT JOIN results res ON res.test_id = t.id
		GROUP BY t.title
		ORDER BY COUNT(res.id) DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			title string
			n     int
		)
		if err := rows.Scan(&title, &n); err != nil {
			return nil, err
		}
		counts[title] = n
	}
	return counts, rows.Err()
}
