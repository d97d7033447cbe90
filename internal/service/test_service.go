package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/config"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// definitionsCacheTTL bounds staleness of the cached test definition set.
const definitionsCacheTTL = 5 * time.Minute

// TestService handles test definition business logic. The full definition set
// is cached in Redis because the scoring engine needs it on every result read.
type TestService struct {
	testRepo *repository.TestRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewTestService creates a new TestService.
func NewTestService(testRepo *repository.TestRepository, rdb *redis.Client, log zerolog.Logger) *TestService {
	return &TestService{
		testRepo: testRepo,
		rdb:      rdb,
		log:      log.With().Str("component", "test_service").Logger(),
	}
}

// GetByID retrieves one test definition.
func (s *TestService) GetByID(ctx context.Context, id string) (*model.TestDefinition, error) {
	return s.testRepo.GetByID(ctx, id)
}

// AllDefinitions returns every test definition, served from the Redis cache
// when warm.
func (s *TestService) AllDefinitions(ctx context.Context) ([]model.TestDefinition, error) {
	key := config.CacheKey.TestDefinitionsKey()

	if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var defs []model.TestDefinition
		if err := json.Unmarshal([]byte(cached), &defs); err == nil {
			return defs, nil
		}
		// Corrupt cache entry: fall through to the store and rewrite it.
		s.log.Warn().Msg("Discarding unreadable test definitions cache entry")
	}

	defs, err := s.testRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if defs == nil {
		defs = []model.TestDefinition{}
	}

	if raw, err := json.Marshal(defs); err == nil {
		if err := s.rdb.Set(ctx, key, raw, definitionsCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Failed to cache test definitions")
		}
	}

	return defs, nil
}

// PrewarmCache loads the definition set into Redis before traffic arrives.
func (s *TestService) PrewarmCache(ctx context.Context) error {
	_, err := s.AllDefinitions(ctx)
	return err
}

// Create inserts a new test definition.
func (s *TestService) Create(ctx context.Context, def *model.TestDefinition) error {
	if def.ID == "" {
		def.ID = uuid.New().String()
	}
	if err := s.testRepo.Create(ctx, def); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// Update modifies an existing test definition.
func (s *TestService) Update(ctx context.Context, def *model.TestDefinition) error {
	if err := s.testRepo.Update(ctx, def); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// Delete removes a test definition.
func (s *TestService) Delete(ctx context.Context, id string) error {
	if err := s.testRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *TestService) invalidateCache(ctx context.Context) {
	if err := s.rdb.Del(ctx, config.CacheKey.TestDefinitionsKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to invalidate test definitions cache")
	}
}
