package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/selene/internal/models"
	"github.com/terraincognita07/selene/internal/timestamp"
)

var (
	errMissingDate      = errors.New("date is required")
	errUnknownSymptom   = errors.New("unknown symptom id")
	errInvalidIntensity = errors.New("intensity must be between 1 and 3")
	errInvalidInsight   = errors.New("insight values must be positive")
)

func requiredDate(input *timestamp.Flexible) (time.Time, error) {
	if input == nil || input.Time.IsZero() {
		return time.Time{}, errMissingDate
	}
	return input.Time, nil
}

func validateCycleInput(input cycleInput) (models.CycleRecord, error) {
	start, err := requiredDate(input.StartDate)
	if err != nil {
		return models.CycleRecord{}, err
	}
	end, err := requiredDate(input.EndDate)
	if err != nil {
		return models.CycleRecord{}, err
	}
	if end.Before(start) {
		return models.CycleRecord{}, errors.New("end_date must not precede start_date")
	}

	length := input.Length
	if length <= 0 {
		length = daysBetween(start, end)
	}

	return models.CycleRecord{
		StartDate: start,
		EndDate:   end,
		Length:    length,
		Symptoms:  []models.SymptomRecord{},
	}, nil
}

// daysBetween counts calendar days, ignoring any time-of-day component so
// the derived length matches the convention used for gap statistics.
func daysBetween(from time.Time, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateSymptomInput(input symptomInput) (models.SymptomRecord, error) {
	known, found := models.LookupKnownSymptom(input.ID)
	if !found {
		return models.SymptomRecord{}, errUnknownSymptom
	}
	if !models.IsValidSymptomIntensity(input.Intensity) {
		return models.SymptomRecord{}, errInvalidIntensity
	}
	date, err := requiredDate(input.Date)
	if err != nil {
		return models.SymptomRecord{}, err
	}

	return models.SymptomRecord{
		ID:        known.ID,
		Name:      known.Name,
		Intensity: input.Intensity,
		Date:      date,
	}, nil
}

func validateInsightInput(input insightInput) (models.CycleInsight, error) {
	if input.AverageCycleLength <= 0 || input.CycleVariation < 0 {
		return models.CycleInsight{}, errInvalidInsight
	}
	return models.CycleInsight{
		AverageCycleLength: input.AverageCycleLength,
		CycleVariation:     input.CycleVariation,
	}, nil
}
