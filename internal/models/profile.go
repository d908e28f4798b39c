package models

import "time"

const DefaultCycleLength = 28

// SymptomRecord is immutable once appended and belongs to exactly one cycle.
type SymptomRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Intensity int       `json:"intensity"`
	Date      time.Time `json:"date"`
}

// CycleRecord captures one completed bleeding interval. Length is the
// end-minus-start span in days, which is not the same metric as the
// start-to-start gap the insights are computed from.
type CycleRecord struct {
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Length    int             `json:"length"`
	Symptoms  []SymptomRecord `json:"symptoms"`
}

type CycleInsight struct {
	AverageCycleLength float64 `json:"average_cycle_length"`
	CycleVariation     float64 `json:"cycle_variation"`
}

// UserCycleProfile is the per-user document of record. All mutation goes
// through one versioned transaction keyed by UserID.
type UserCycleProfile struct {
	UserID          string        `json:"user_id"`
	LastPeriodStart *time.Time    `json:"last_period_start,omitempty"`
	PeriodEndDate   *time.Time    `json:"period_end_date,omitempty"`
	CycleHistory    []CycleRecord `json:"cycle_history"`
	Insights        *CycleInsight `json:"insights,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func NewUserCycleProfile(userID string) UserCycleProfile {
	return UserCycleProfile{
		UserID:       userID,
		CycleHistory: []CycleRecord{},
	}
}

// Clone returns a deep copy so transaction callbacks can mutate freely
// without aliasing the stored document.
func (profile UserCycleProfile) Clone() UserCycleProfile {
	copied := profile
	if profile.LastPeriodStart != nil {
		start := *profile.LastPeriodStart
		copied.LastPeriodStart = &start
	}
	if profile.PeriodEndDate != nil {
		end := *profile.PeriodEndDate
		copied.PeriodEndDate = &end
	}
	if profile.Insights != nil {
		insight := *profile.Insights
		copied.Insights = &insight
	}
	copied.CycleHistory = make([]CycleRecord, len(profile.CycleHistory))
	for i, cycle := range profile.CycleHistory {
		cloned := cycle
		cloned.Symptoms = make([]SymptomRecord, len(cycle.Symptoms))
		copy(cloned.Symptoms, cycle.Symptoms)
		copied.CycleHistory[i] = cloned
	}
	return copied
}
