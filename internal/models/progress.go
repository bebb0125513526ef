// internal/models/progress.go
package models

type LevelProgress struct {
	CurrentLevel        int    `json:"currentLevel"`
	LevelTitle          string `json:"levelTitle"`
	TotalXP             int    `json:"totalXP"`
	CurrentLevelFloorXP int    `json:"currentLevelFloorXP"`
	NextLevelFloorXP    int    `json:"nextLevelFloorXP"`
	XPToNextLevel       int    `json:"xpToNextLevel"`
	ProgressPercentage  int    `json:"progressPercentage"`
}
