package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vallepan/recetario-backend/internal/matching"
	"github.com/vallepan/recetario-backend/internal/platform/logger"
)

// CandidateCache keeps the active-ingredient candidate list for the
// fuzzy matcher in Redis so rematch passes over large imports do not
// re-read the whole catalog per line.
type CandidateCache interface {
	Get(ctx context.Context) ([]matching.Candidate, error)
	Set(ctx context.Context, candidates []matching.Candidate) error
	Invalidate(ctx context.Context) error
	Close() error
}

type candidateCache struct {
	log *logger.Logger
	rdb *goredis.Client
	key string
	ttl time.Duration
}

func NewCandidateCache(log *logger.Logger) (CandidateCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	key := strings.TrimSpace(os.Getenv("REDIS_CANDIDATE_KEY"))
	if key == "" {
		key = "matching:candidates"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &candidateCache{
		log: log.With("service", "RedisCandidateCache"),
		rdb: rdb,
		key: key,
		ttl: 5 * time.Minute,
	}, nil
}

func (c *candidateCache) Get(ctx context.Context) ([]matching.Candidate, error) {
	if c == nil || c.rdb == nil {
		return nil, fmt.Errorf("candidate cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var candidates []matching.Candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		c.log.Warn("bad cached candidate payload", "error", err)
		return nil, nil
	}
	return candidates, nil
}

func (c *candidateCache) Set(ctx context.Context, candidates []matching.Candidate) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("candidate cache not initialized")
	}
	raw, err := json.Marshal(candidates)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key, raw, c.ttl).Err()
}

func (c *candidateCache) Invalidate(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.key).Err()
}

func (c *candidateCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
