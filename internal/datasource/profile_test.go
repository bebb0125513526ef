package datasource

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func errorCode(t *testing.T, err error) errors.ErrorCode {
	t.Helper()
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr), "expected StandardError, got %v", err)
	return stdErr.Code
}

func TestProfileStore_GetProfile_CacheMiss(t *testing.T) {
	db, mock := setupMockDB(t)
	redisClient, redisMock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectQuery("SELECT skills, location, experience_years FROM candidate_profiles").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"skills", "location", "experience_years"}).
			AddRow([]byte(`[{"name":"Go","proficiency":"expert"},{"name":"SQL"}]`), "Berlin", 4.5))

	expected := &models.CandidateProfile{
		UserID: "user-1",
		Skills: []models.Skill{
			{Name: "Go", Proficiency: models.ProficiencyExpert},
			{Name: "SQL"},
		},
		Location:        "Berlin",
		ExperienceYears: 4.5,
	}
	cached, _ := json.Marshal(expected)

	redisMock.ExpectGet("profile:user-1").RedisNil()
	redisMock.ExpectSet("profile:user-1", cached, 5*time.Minute).SetVal("OK")

	store := NewProfileStore(db, redisClient, 5*time.Minute, logger.NewTestLogger(t))
	profile, err := store.GetProfile(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, expected, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProfileStore_GetProfile_CacheHit(t *testing.T) {
	db, mock := setupMockDB(t)
	redisClient, redisMock := redismock.NewClientMock()

	cachedProfile := models.CandidateProfile{
		UserID: "user-2",
		Skills: []models.Skill{{Name: "Python"}},
	}
	cached, _ := json.Marshal(cachedProfile)
	redisMock.ExpectGet("profile:user-2").SetVal(string(cached))

	store := NewProfileStore(db, redisClient, time.Minute, logger.NewTestLogger(t))
	profile, err := store.GetProfile(context.Background(), "user-2")

	require.NoError(t, err)
	assert.Equal(t, "Python", profile.Skills[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProfileStore_GetProfile_Errors(t *testing.T) {
	tests := []struct {
		name         string
		dbErr        error
		expectedCode errors.ErrorCode
	}{
		{"missing row", sql.ErrNoRows, errors.ErrCodeProfileNotFound},
		{"connection failure", fmt.Errorf("connection refused"), errors.ErrCodeProfileFetchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			mock.ExpectQuery("SELECT skills").WithArgs("user-x").WillReturnError(tt.dbErr)

			store := NewProfileStore(db, nil, time.Minute, logger.NewTestLogger(t))
			profile, err := store.GetProfile(context.Background(), "user-x")

			assert.Nil(t, profile)
			assert.Equal(t, tt.expectedCode, errorCode(t, err))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProfileStore_GetProfile_NullColumns(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT skills").
		WithArgs("user-3").
		WillReturnRows(sqlmock.NewRows([]string{"skills", "location", "experience_years"}).
			AddRow([]byte(`not json`), nil, nil))

	store := NewProfileStore(db, nil, time.Minute, logger.NewTestLogger(t))
	profile, err := store.GetProfile(context.Background(), "user-3")

	require.NoError(t, err)
	assert.Empty(t, profile.Skills)
	assert.Empty(t, profile.Location)
	assert.Equal(t, models.FallbackLocation, profile.DisplayLocation())
}

func TestProfileStore_Invalidate(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	redisMock.ExpectDel("profile:user-4").SetVal(1)
	redisMock.ExpectDel("profile:user-5").SetVal(0)
	redisMock.ExpectDel("profile:user-6").SetErr(fmt.Errorf("connection reset"))

	store := NewProfileStore(nil, redisClient, time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	dropped, err := store.Invalidate(ctx, "user-4")
	require.NoError(t, err)
	assert.True(t, dropped)

	dropped, err = store.Invalidate(ctx, "user-5")
	require.NoError(t, err)
	assert.False(t, dropped)

	_, err = store.Invalidate(ctx, "user-6")
	assert.Equal(t, errors.ErrCodeProfileCacheFailed, errorCode(t, err))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProfileStore_Invalidate_NoCache(t *testing.T) {
	store := NewProfileStore(nil, nil, time.Minute, logger.NewTestLogger(t))
	dropped, err := store.Invalidate(context.Background(), "user-7")
	require.NoError(t, err)
	assert.False(t, dropped)
}
