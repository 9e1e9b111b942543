package analytics

import "calmwave/models"

// StreakMode selects how "no" records before the first "yes" are treated.
type StreakMode int

const (
	// StreakSinceTrigger counts only "no" records after the most recent "yes". A history with no "yes"
	// at all yields 0.
	StreakSinceTrigger StreakMode = iota
	// StreakIncludeLeading also counts the run of "no" records before the first "yes".
	StreakIncludeLeading
)

// ComputeStreak returns the days-without-alcohol count for check-ins ordered oldest first,
// using StreakSinceTrigger.
func ComputeStreak(checkIns []models.CheckIn) int {
	return ComputeStreakWithMode(checkIns, StreakSinceTrigger)
}

// ComputeStreakWithMode is ComputeStreak with an explicit mode. Records with an unknown alcohol
// flag neither reset nor extend the streak.
func ComputeStreakWithMode(checkIns []models.CheckIn, mode StreakMode) int {
	seen := mode == StreakIncludeLeading
	count := 0
	for _, c := range checkIns {
		switch c.Alcohol {
		case models.AlcoholYes:
			seen = true
			count = 0
		case models.AlcoholNo:
			if seen {
				count++
			}
		}
	}
	return count
}
