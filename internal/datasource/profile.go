// internal/datasource/profile.go
package datasource

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/models"
)

const profileCachePrefix = "profile:"

const profileQuery = `
	SELECT skills, location, experience_years
	FROM candidate_profiles WHERE user_id = $1`

// ProfileStore reads candidate profiles from Postgres through a Redis cache.
// A nil cache disables caching.
type ProfileStore struct {
	db    *sql.DB
	cache *redis.Client
	ttl   time.Duration
	log   logger.Logger
}

func NewProfileStore(db *sql.DB, cache *redis.Client, ttl time.Duration, log logger.Logger) *ProfileStore {
	return &ProfileStore{db: db, cache: cache, ttl: ttl, log: log}
}

func ProfileCacheKey(userID string) string {
	return profileCachePrefix + userID
}

// GetProfile returns PROFILE_NOT_FOUND when the user has no profile row.
func (s *ProfileStore) GetProfile(ctx context.Context, userID string) (*models.CandidateProfile, error) {
	if profile, ok := s.fromCache(ctx, userID); ok {
		return profile, nil
	}

	var (
		skills     []byte
		location   sql.NullString
		experience sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, profileQuery, userID).Scan(&skills, &location, &experience)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewProfileNotFoundError(userID)
	}
	if err != nil {
		return nil, errors.NewProfileFetchFailedError(userID, err)
	}

	profile := &models.CandidateProfile{
		UserID:          userID,
		Location:        location.String,
		ExperienceYears: experience.Float64,
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &profile.Skills); err != nil {
			s.log.Warn("Discarding malformed skills column", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
			profile.Skills = nil
		}
	}

	s.toCache(ctx, profile)
	return profile, nil
}

// Invalidate drops the cached copy so the next read goes to Postgres. It
// reports whether a cached copy existed.
func (s *ProfileStore) Invalidate(ctx context.Context, userID string) (bool, error) {
	if s.cache == nil {
		return false, nil
	}
	n, err := s.cache.Del(ctx, ProfileCacheKey(userID)).Result()
	if err != nil {
		return false, errors.NewProfileCacheFailedError(userID, err)
	}
	return n > 0, nil
}

func (s *ProfileStore) fromCache(ctx context.Context, userID string) (*models.CandidateProfile, bool) {
	if s.cache == nil {
		return nil, false
	}
	val, err := s.cache.Get(ctx, ProfileCacheKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("Profile cache read failed", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
		return nil, false
	}
	var profile models.CandidateProfile
	if err := json.Unmarshal(val, &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

func (s *ProfileStore) toCache(ctx context.Context, profile *models.CandidateProfile) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, ProfileCacheKey(profile.UserID), data, s.ttl).Err(); err != nil {
		s.log.Warn("Profile cache write failed", map[string]interface{}{
			"userId": profile.UserID,
			"error":  err.Error(),
		})
	}
}
