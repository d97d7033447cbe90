package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/config"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/service"
)

const (
	BreakdownBatchSize    = 50
	BreakdownBatchTimeout = 2 * time.Second
	BreakdownPollTimeout  = 1 * time.Second

	// Cached breakdowns outlive the admin session comfortably; the worker
	// recomputes on the next submission anyway.
	BreakdownCacheTTL = 24 * time.Hour
)

// BreakdownWorker drains submitted result IDs from the queue, runs the
// normalization pipeline over each record, caches the computed view, and
// publishes it to the live monitor channel.
type BreakdownWorker struct {
	resultService *service.ResultService
	rdb           *redis.Client
	log           zerolog.Logger
}

func NewBreakdownWorker(resultService *service.ResultService, rdb *redis.Client, log zerolog.Logger) *BreakdownWorker {
	return &BreakdownWorker{
		resultService: resultService,
		rdb:           rdb,
		log:           log.With().Str("component", "breakdown_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *BreakdownWorker) Start(ctx context.Context) {
	w.log.Info().Msg("BreakdownWorker started")

	batch := make([]string, 0, BreakdownBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= BreakdownBatchSize || time.Since(lastFlush) >= BreakdownBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, BreakdownPollTimeout, config.WorkerKey.BreakdownQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 || item[1] == "" {
				continue
			}

			batch = append(batch, item[1])
		}
	}
}

// ----------------------------------------------------------------
// Batch compute + cache + publish
// ----------------------------------------------------------------

func (w *BreakdownWorker) flushSafe(ctx context.Context, batch []string) {
	if len(batch) == 0 {
		return
	}

	pipe := w.rdb.Pipeline()
	published := 0

	for _, resultID := range batch {
		row, err := w.resultService.Get(ctx, resultID)
		if err != nil {
			w.log.Error().Err(err).Str("result_id", resultID).Msg("Failed to load result, requeueing")
			w.rdb.RPush(ctx, config.WorkerKey.BreakdownQueue, resultID)
			continue
		}

		raw, err := json.Marshal(row)
		if err != nil {
			w.log.Error().Err(err).Str("result_id", resultID).Msg("Failed to marshal breakdown")
			continue
		}

		pipe.Set(ctx, config.CacheKey.ResultBreakdownKey(resultID), raw, BreakdownCacheTTL)
		pipe.Publish(ctx, config.CacheKey.ResultsMonitorChannel(), raw)
		published++
	}

	if _, err := pipe.Exec(ctx); err != nil {
		w.log.Warn().Err(err).Msg("Pipeline exec failed, requeueing batch")
		for _, resultID := range batch {
			w.rdb.RPush(ctx, config.WorkerKey.BreakdownQueue, resultID)
		}
		return
	}

	w.log.Debug().Int("count", published).Msg("Flushed breakdown batch")
}
