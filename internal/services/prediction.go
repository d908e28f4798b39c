package services

import (
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

const lutealPhaseDays = 14

// PredictionWindow is recomputed on demand and never persisted.
type PredictionWindow struct {
	OvulationDate      time.Time `json:"ovulation_date"`
	FertileWindowStart time.Time `json:"fertile_window_start"`
	FertileWindowEnd   time.Time `json:"fertile_window_end"`
	NextPeriodDate     time.Time `json:"next_period_date"`
}

// PredictWindow projects the next fertility window from the latest period
// start. Ovulation is taken as fourteen days before the next period; the
// fertile window spans the five days before ovulation through the day after.
// A cycle length of fourteen or less still produces a (past-dated) window;
// sanity-checking the length is the caller's concern.
func PredictWindow(lastPeriodStart time.Time, averageCycleLength int) PredictionWindow {
	start := dateOnly(lastPeriodStart)
	ovulation := start.AddDate(0, 0, averageCycleLength-lutealPhaseDays)
	return PredictionWindow{
		OvulationDate:      ovulation,
		FertileWindowStart: ovulation.AddDate(0, 0, -5),
		FertileWindowEnd:   ovulation.AddDate(0, 0, 1),
		NextPeriodDate:     start.AddDate(0, 0, averageCycleLength),
	}
}

// ProfileCycleLength picks the prediction length for a profile: the rounded
// insight average when present, the conventional default otherwise.
func ProfileCycleLength(profile models.UserCycleProfile) int {
	if profile.Insights != nil && profile.Insights.AverageCycleLength > 0 {
		return int(profile.Insights.AverageCycleLength + 0.5)
	}
	return models.DefaultCycleLength
}
