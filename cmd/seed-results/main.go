package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/config"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/database"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/logger"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/repository"
)

// Seeds a demo test definition plus submissions in every historical payload
// shape so a fresh environment has something to show on the results screens.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	testRepo := repository.NewTestRepository(pool)
	resultRepo := repository.NewResultRepository(pool)

	fmt.Println("=== Seeding Demo Test + Results ===")

	answer := func(i int) *int { return &i }
	def := &model.TestDefinition{
		ID:    "seed-placement-101",
		Title: "Placement Assessment",
		Modules: map[string]model.Module{
			"grammar": {
				Enabled: true,
				Title:   "Grammar",
				Questions: []model.Question{
					{Text: "Pick the correct form.", Options: []string{"go", "goes"}, CorrectAnswer: answer(1)},
					{Text: "Pick the correct tense.", Options: []string{"ran", "run"}, CorrectAnswer: answer(0)},
					{MCQs: []model.Question{
						{Text: "Fill blank 1", Options: []string{"a", "an"}, CorrectAnswer: answer(0)},
						{Text: "Fill blank 2", Options: []string{"is", "are"}, CorrectAnswer: answer(1)},
					}},
				},
			},
			"speaking": {
				Enabled: true,
				Title:   "Speaking",
				Questions: []model.Question{
					{Text: "Introduce yourself in one minute."},
				},
			},
			"archived": {
				Enabled: false,
				Title:   "Archived Section",
				Questions: []model.Question{
					{Text: "Old question", Options: []string{"x", "y"}, CorrectAnswer: answer(0)},
				},
			},
		},
	}

	if err := testRepo.Create(ctx, def); err != nil {
		fmt.Printf("Test definition not created (may already exist): %v\n", err)
	} else {
		fmt.Printf("Created test %q\n", def.ID)
	}

	now := time.Now().UTC()
	started := now.Add(-40 * time.Minute).Format(time.RFC3339)
	ended := now.Format(time.RFC3339)

	records := []*model.SubmissionRecord{
		// Modern shape: detailed scores tree with MCQ marks and a voice rubric.
		{
			ID:        fmt.Sprintf("result_%d_1", now.UnixMilli()),
			StudentID: 1,
			TestID:    def.ID,
			TestTitle: def.Title,
			StartedAt: started,
			EndedAt:   ended,
			Scores: map[string]any{
				"grammar": map[string]any{
					"q1": 1, "q2": 0, "q3": 5,
				},
				"speaking": map[string]any{
					"q1": map[string]any{
						"fluency": 0.7, "pronunciation": 0.6, "clarity": 0.8,
					},
				},
			},
		},
		// Older shape: normalized per-module scores only.
		{
			ID:           fmt.Sprintf("result_%d_2", now.UnixMilli()),
			StudentID:    2,
			TestID:       def.ID,
			TestTitle:    def.Title,
			StartedAt:    started,
			SubmittedAt:  ended,
			ModuleScores: map[string]any{"grammar": 85, "speaking": 0.6},
		},
		// Legacy shape: a bare total, duration carried as seconds.
		{
			ID:              fmt.Sprintf("result_%d_3", now.UnixMilli()),
			StudentID:       3,
			TestID:          def.ID,
			TestTitle:       def.Title,
			DurationSeconds: 1930,
			TotalScore:      3,
		},
		// Oldest shape: percentage only, start time recoverable from the ID.
		{
			ID:          fmt.Sprintf("result_%d_4", now.Add(-25*time.Minute).UnixMilli()),
			StudentID:   4,
			TestTitle:   def.Title,
			CompletedAt: ended,
			Percentage:  76,
		},
	}

	successCount := 0
	for _, rec := range records {
		if err := resultRepo.Create(ctx, rec); err != nil {
			fmt.Printf("Error creating result %s: %v\n", rec.ID, err)
		} else {
			successCount++
		}
	}

	// A few randomized modern submissions to fill out the dashboard.
	for i := 5; i < 15; i++ {
		rec := &model.SubmissionRecord{
			ID:        fmt.Sprintf("result_%d_%d", now.UnixMilli(), i),
			StudentID: i,
			TestID:    def.ID,
			TestTitle: def.Title,
			StartedAt: now.Add(-time.Duration(20+rand.Intn(40)) * time.Minute).Format(time.RFC3339),
			EndedAt:   ended,
			Scores: map[string]any{
				"grammar": map[string]any{
					"q1": rand.Intn(2), "q2": rand.Intn(2),
					"q3": rand.Intn(5) + 1,
				},
				"speaking": map[string]any{
					"q1": map[string]any{
						"fluency":       rand.Float64(),
						"pronunciation": rand.Float64(),
						"clarity":       rand.Float64(),
					},
				},
			},
		}
		if err := resultRepo.Create(ctx, rec); err != nil {
			fmt.Printf("Error creating result %s: %v\n", rec.ID, err)
		} else {
			successCount++
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d results.\n", successCount)
}
