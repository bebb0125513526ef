// internal/datasource/jobstate.go
package datasource

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"

	"career-workers/internal/common/errors"
	"career-workers/internal/models"
)

// JobStateStore keeps one Redis set of job ids per user and state.
type JobStateStore struct {
	rdb *redis.Client
}

func NewJobStateStore(rdb *redis.Client) *JobStateStore {
	return &JobStateStore{rdb: rdb}
}

func JobStateKey(userID string, state models.JobState) string {
	return "jobstate:" + userID + ":" + string(state)
}

// Set adds jobID to the state when active is true and removes it otherwise.
func (s *JobStateStore) Set(ctx context.Context, userID, jobID string, state models.JobState, active bool) error {
	key := JobStateKey(userID, state)
	var err error
	if active {
		err = s.rdb.SAdd(ctx, key, jobID).Err()
	} else {
		err = s.rdb.SRem(ctx, key, jobID).Err()
	}
	if err != nil {
		return errors.NewJobStateStoreFailedError("set", err)
	}
	return nil
}

// List returns the job ids in the state, sorted.
func (s *JobStateStore) List(ctx context.Context, userID string, state models.JobState) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, JobStateKey(userID, state)).Result()
	if err != nil {
		return nil, errors.NewJobStateStoreFailedError("list", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *JobStateStore) Has(ctx context.Context, userID, jobID string, state models.JobState) (bool, error) {
	ok, err := s.rdb.SIsMember(ctx, JobStateKey(userID, state), jobID).Result()
	if err != nil {
		return false, errors.NewJobStateStoreFailedError("get", err)
	}
	return ok, nil
}
