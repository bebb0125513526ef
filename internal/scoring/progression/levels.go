// internal/scoring/progression/levels.go
package progression

import (
	"math"

	"career-workers/internal/models"
)

// overflowSpan is the width of the single bucket modeled past the table.
const overflowSpan = 15000

// LevelThresholds[i] is the XP floor of level i+1.
var LevelThresholds = []int{0, 500, 1200, 2500, 4500, 7500, 12000, 18000, 26000, 36000, 50000}

var levelTitles = []string{
	"Newcomer",
	"Explorer",
	"Apprentice",
	"Practitioner",
	"Specialist",
	"Professional",
	"Expert",
	"Master",
	"Grandmaster",
	"Champion",
	"Legend",
}

const fallbackTitle = "Career Icon"

// MaxLevel is the table length plus the overflow bucket.
var MaxLevel = len(LevelThresholds) + 1

func levelFloor(level int) int {
	switch {
	case level <= 1:
		return 0
	case level <= len(LevelThresholds):
		return LevelThresholds[level-1]
	default:
		return LevelThresholds[len(LevelThresholds)-1] + overflowSpan
	}
}

func nextLevelFloor(level int) int {
	if level < len(LevelThresholds) {
		return LevelThresholds[level]
	}
	return levelFloor(level) + overflowSpan
}

// CurrentLevel treats negative XP as zero.
func CurrentLevel(totalXP int) int {
	if totalXP >= levelFloor(MaxLevel) {
		return MaxLevel
	}
	level := 1
	for i, floor := range LevelThresholds {
		if totalXP >= floor {
			level = i + 1
		}
	}
	return level
}

func LevelTitle(level int) string {
	if level >= 1 && level <= len(levelTitles) {
		return levelTitles[level-1]
	}
	return fallbackTitle
}

func Progress(totalXP int) models.LevelProgress {
	if totalXP < 0 {
		totalXP = 0
	}

	level := CurrentLevel(totalXP)
	floor := levelFloor(level)
	next := nextLevelFloor(level)

	pct := 0
	if span := next - floor; span > 0 {
		pct = int(math.Round(100 * float64(totalXP-floor) / float64(span)))
	}
	pct = max(0, min(100, pct))

	return models.LevelProgress{
		CurrentLevel:        level,
		LevelTitle:          LevelTitle(level),
		TotalXP:             totalXP,
		CurrentLevelFloorXP: floor,
		NextLevelFloorXP:    next,
		XPToNextLevel:       max(0, next-totalXP),
		ProgressPercentage:  pct,
	}
}

// ProgressFor is TotalXP followed by Progress.
func ProgressFor(records []models.ActivityRecord) models.LevelProgress {
	return Progress(TotalXP(records))
}
