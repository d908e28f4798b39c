package api

import "github.com/terraincognita07/selene/internal/timestamp"

type periodDateInput struct {
	Date *timestamp.Flexible `json:"date"`
}

type cycleInput struct {
	StartDate *timestamp.Flexible `json:"start_date"`
	EndDate   *timestamp.Flexible `json:"end_date"`
	Length    int                 `json:"length"`
}

type symptomInput struct {
	ID        string              `json:"id"`
	Intensity int                 `json:"intensity"`
	Date      *timestamp.Flexible `json:"date"`
}

type insightInput struct {
	AverageCycleLength float64 `json:"average_cycle_length"`
	CycleVariation     float64 `json:"cycle_variation"`
}
