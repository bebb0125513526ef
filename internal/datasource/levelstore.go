// internal/datasource/levelstore.go
package datasource

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"career-workers/internal/common/errors"
)

// LevelStore remembers the last level reported for each user.
type LevelStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewLevelStore creates a store whose entries expire after ttl; zero keeps them forever.
func NewLevelStore(rdb *redis.Client, ttl time.Duration) *LevelStore {
	return &LevelStore{rdb: rdb, ttl: ttl}
}

func LevelKey(userID string) string {
	return "progress:level:" + userID
}

// LastLevel reports ok=false when no level was stored for the user.
func (s *LevelStore) LastLevel(ctx context.Context, userID string) (level int, ok bool, err error) {
	level, err = s.rdb.Get(ctx, LevelKey(userID)).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.NewJobStateStoreFailedError("get_level", err)
	}
	return level, true, nil
}

func (s *LevelStore) SaveLevel(ctx context.Context, userID string, level int) error {
	if err := s.rdb.Set(ctx, LevelKey(userID), level, s.ttl).Err(); err != nil {
		return errors.NewJobStateStoreFailedError("save_level", err)
	}
	return nil
}
