// internal/datasource/activity.go
package datasource

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/models"
)

const activityQuery = `
	SELECT kind, payload
	FROM activity_records
	WHERE user_id = $1
	ORDER BY recorded_at`

type ActivityStore struct {
	db  *sql.DB
	log logger.Logger
}

func NewActivityStore(db *sql.DB, log logger.Logger) *ActivityStore {
	return &ActivityStore{db: db, log: log}
}

// ListActivities returns every stored activity for the user, oldest first.
// Rows with an unknown kind or an undecodable payload are skipped.
func (s *ActivityStore) ListActivities(ctx context.Context, userID string) ([]models.ActivityRecord, error) {
	rows, err := s.db.QueryContext(ctx, activityQuery, userID)
	if err != nil {
		return nil, errors.NewActivityFetchFailedError(userID, err)
	}
	defer rows.Close()

	records := make([]models.ActivityRecord, 0)
	for rows.Next() {
		var (
			kind    string
			payload []byte
		)
		if err := rows.Scan(&kind, &payload); err != nil {
			return nil, errors.NewActivityFetchFailedError(userID, err)
		}
		record, err := DecodeActivity(models.ActivityKind(kind), payload)
		if err != nil {
			s.log.Warn("Skipping activity record", map[string]interface{}{
				"userId": userID,
				"kind":   kind,
				"error":  err.Error(),
			})
			continue
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewActivityFetchFailedError(userID, err)
	}
	return records, nil
}

// DecodeActivity builds a record from a stored kind and its JSON payload.
func DecodeActivity(kind models.ActivityKind, payload []byte) (models.ActivityRecord, error) {
	var (
		record models.ActivityRecord
		err    error
	)
	switch kind {
	case models.KindTestCompletion:
		var v models.TestCompletion
		err = json.Unmarshal(payload, &v)
		record = models.TestCompletionRecord(v)
	case models.KindSkillsAssessment:
		var v models.SkillsAssessment
		err = json.Unmarshal(payload, &v)
		record = models.SkillsAssessmentRecord(v)
	case models.KindProfileCompletion:
		var v models.ProfileCompletion
		err = json.Unmarshal(payload, &v)
		record = models.ProfileCompletionRecord(v)
	case models.KindEngagement:
		var v models.Engagement
		err = json.Unmarshal(payload, &v)
		record = models.EngagementRecord(v)
	case models.KindAchievement:
		var v models.Achievement
		err = json.Unmarshal(payload, &v)
		record = models.AchievementRecord(v)
	case models.KindCodingChallenge:
		var v models.CodingChallenge
		err = json.Unmarshal(payload, &v)
		record = models.CodingChallengeRecord(v)
	default:
		return models.ActivityRecord{}, fmt.Errorf("unknown activity kind %q", kind)
	}
	if err != nil {
		return models.ActivityRecord{}, fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return record, nil
}
