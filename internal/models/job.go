// internal/models/job.go
package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusInactive JobStatus = "inactive"
	JobStatusApplied  JobStatus = "applied"
)

type JobPosting struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Location   string    `json:"location"`
	Skills     []string  `json:"skills,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Remote     bool      `json:"remote"`
	Type       string    `json:"type,omitempty"`
	PostedDate Date      `json:"postedDate"`
	Status     JobStatus `json:"status,omitempty"`
}

// RequiredSkills returns the posting's skill list, falling back to its tags,
// with case-insensitive duplicates removed.
func (j *JobPosting) RequiredSkills() []string {
	src := j.Skills
	if len(src) == 0 {
		src = j.Tags
	}
	seen := make(map[string]bool, len(src))
	out := make([]string, 0, len(src))
	for _, s := range src {
		key := NormalizeSkill(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func (j *JobPosting) IsInactive() bool {
	return strings.EqualFold(string(j.Status), string(JobStatusInactive))
}

type JobMatch struct {
	JobPosting
	MatchScore    int      `json:"matchScore"`
	MatchedSkills []string `json:"matchedSkills,omitempty"`
	Reasons       []string `json:"reasons,omitempty"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date is a posting date that tolerates the loosely-typed values the job
// sources send. Anything unparseable decodes to the zero Date.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}
		}
	}
	return Date{}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = ParseDate(s)
		return nil
	}

	// epoch milliseconds
	var ms float64
	if err := json.Unmarshal(data, &ms); err == nil && ms > 0 {
		*d = Date{Time: time.UnixMilli(int64(ms)).UTC()}
		return nil
	}

	*d = Date{}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

// JobState is a per-user flag on a posting.
type JobState string

const (
	JobStateSaved   JobState = "saved"
	JobStateApplied JobState = "applied"
	JobStateLiked   JobState = "liked"
)

var JobStates = []JobState{JobStateSaved, JobStateApplied, JobStateLiked}

func (s JobState) Valid() bool {
	for _, known := range JobStates {
		if s == known {
			return true
		}
	}
	return false
}
