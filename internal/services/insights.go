package services

import (
	"math"
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

// ComputeInsights derives aggregate statistics from cycle history ordered by
// start date ascending. It needs at least two records; the second return
// value reports whether an insight was produced. The statistics are built
// from the gaps between consecutive period starts, not from the recorded
// bleeding lengths.
func ComputeInsights(history []models.CycleRecord) (models.CycleInsight, bool) {
	if len(history) < 2 {
		return models.CycleInsight{}, false
	}

	gaps := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		gaps = append(gaps, float64(daysBetween(history[i-1].StartDate, history[i].StartDate)))
	}

	mean := meanFloats(gaps)

	var squaredSum float64
	for _, gap := range gaps {
		deviation := gap - mean
		squaredSum += deviation * deviation
	}
	variation := math.Sqrt(squaredSum / float64(len(gaps)))

	return models.CycleInsight{
		AverageCycleLength: math.Round(mean),
		CycleVariation:     math.Round(variation),
	}, true
}

func meanFloats(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, value := range values {
		total += value
	}
	return total / float64(len(values))
}

func daysBetween(from time.Time, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
