package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/selene/internal/models"
)

// CycleService orchestrates the write path: it mutates the document through
// CycleRepository, recomputes insights whenever the history grows, and
// triggers the calendar projection as a best-effort side effect.
type CycleService struct {
	repo *CycleRepository
	sync *CalendarSynchronizer
	log  *logrus.Logger
	now  func() time.Time
}

func NewCycleService(repo *CycleRepository, sync *CalendarSynchronizer, log *logrus.Logger) *CycleService {
	return &CycleService{
		repo: repo,
		sync: sync,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (service *CycleService) FetchProfile(userID string) (models.UserCycleProfile, error) {
	return service.repo.FetchProfile(userID)
}

func (service *CycleService) StartPeriod(userID string, start time.Time) (models.UserCycleProfile, error) {
	profile, err := service.repo.UpsertPeriodStart(userID, start)
	if err != nil {
		return models.UserCycleProfile{}, err
	}
	service.resyncCalendar(profile)
	return profile, nil
}

// EndPeriod closes the open period and, both dates now being known, records
// the completed cycle and refreshes the derived insights.
func (service *CycleService) EndPeriod(userID string, end time.Time) (models.UserCycleProfile, error) {
	profile, err := service.repo.SetPeriodEnd(userID, end)
	if err != nil {
		return models.UserCycleProfile{}, err
	}

	start := *profile.LastPeriodStart
	cycle := models.CycleRecord{
		StartDate: start,
		EndDate:   end,
		Length:    daysBetween(start, end),
		Symptoms:  []models.SymptomRecord{},
	}
	profile, err = service.RecordCycle(userID, cycle)
	if err != nil {
		return models.UserCycleProfile{}, err
	}
	service.resyncCalendar(profile)
	return profile, nil
}

// RecordCycle appends a completed cycle and persists recomputed insights
// once the history is large enough to carry any.
func (service *CycleService) RecordCycle(userID string, cycle models.CycleRecord) (models.UserCycleProfile, error) {
	profile, err := service.repo.AppendCycle(userID, cycle)
	if err != nil {
		return models.UserCycleProfile{}, err
	}
	if insight, ok := ComputeInsights(profile.CycleHistory); ok {
		profile, err = service.repo.MergeInsights(userID, insight)
		if err != nil {
			return models.UserCycleProfile{}, err
		}
	}
	return profile, nil
}

func (service *CycleService) LogSymptom(userID string, symptom models.SymptomRecord, cycleIndex int) (models.UserCycleProfile, error) {
	return service.repo.AppendSymptom(userID, symptom, cycleIndex)
}

func (service *CycleService) UpdateInsights(userID string, insight models.CycleInsight) (models.UserCycleProfile, error) {
	return service.repo.MergeInsights(userID, insight)
}

// Predictions derives the fertility window on read; nothing is stored.
func (service *CycleService) Predictions(userID string) (PredictionWindow, error) {
	profile, err := service.repo.FetchProfile(userID)
	if err != nil {
		return PredictionWindow{}, err
	}
	if profile.LastPeriodStart == nil {
		return PredictionWindow{}, ErrInvalidState
	}
	return PredictWindow(*profile.LastPeriodStart, ProfileCycleLength(profile)), nil
}

// ResyncCalendar regenerates the calendar projection for one user. Unlike
// the implicit sync on period writes, the caller sees provider failures.
func (service *CycleService) ResyncCalendar(userID string) ([]models.CalendarEvent, error) {
	profile, err := service.repo.FetchProfile(userID)
	if err != nil {
		return nil, err
	}
	if profile.LastPeriodStart == nil {
		return nil, ErrInvalidState
	}
	return service.sync.Sync(userID, *profile.LastPeriodStart, service.now())
}

func (service *CycleService) resyncCalendar(profile models.UserCycleProfile) {
	if service.sync == nil || profile.LastPeriodStart == nil {
		return
	}
	if _, err := service.sync.Sync(profile.UserID, *profile.LastPeriodStart, service.now()); err != nil {
		service.log.WithField("user_id", profile.UserID).Warnf("calendar sync skipped: %v", err)
	}
}
