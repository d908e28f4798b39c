package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/selene/internal/models"
)

const (
	syncHorizonDays = 90
	projectedCycles = 3

	// The projection deliberately uses a fixed 28-day/5-day template rather
	// than the per-user average, keeping regenerated calendars deterministic.
	templateCycleDays  = 28
	templatePeriodDays = 5
	fertileStartOffset = 11
	fertileEndOffset   = 17
	ovulationOffset    = 14
)

// CalendarProvider is the device-calendar boundary. The synchronizer only
// ever lists, deletes, and creates events inside its own managed calendar.
type CalendarProvider interface {
	ListEvents(calendarID string, from time.Time, to time.Time) ([]models.CalendarEvent, error)
	CreateEvent(calendarID string, event models.CalendarEvent) (models.CalendarEvent, error)
	DeleteEvent(eventID string) error
}

// CalendarSynchronizer regenerates the rolling fertility projection in the
// external calendar. It is a side-effect-only consumer: no failure here may
// ever touch the cycle document.
type CalendarSynchronizer struct {
	provider CalendarProvider
	log      *logrus.Logger
}

func NewCalendarSynchronizer(provider CalendarProvider, log *logrus.Logger) *CalendarSynchronizer {
	return &CalendarSynchronizer{provider: provider, log: log}
}

func ManagedCalendarID(userID string) string {
	return "selene-cycle-" + userID
}

// Sync clears the managed calendar and recreates the three-cycle projection
// from lastPeriodStart. The cleared window starts at the projection start
// when that predates today, so events already in the past are replaced rather
// than duplicated; delete-then-recreate keeps repeated syncs idempotent.
// Individual provider failures are logged and skipped; only a failed initial
// listing aborts the sync.
func (sync *CalendarSynchronizer) Sync(userID string, lastPeriodStart time.Time, now time.Time) ([]models.CalendarEvent, error) {
	calendarID := ManagedCalendarID(userID)
	today := dateOnly(now)

	clearFrom := today
	if projectionStart := dateOnly(lastPeriodStart); projectionStart.Before(clearFrom) {
		clearFrom = projectionStart
	}
	existing, err := sync.provider.ListEvents(calendarID, clearFrom, today.AddDate(0, 0, syncHorizonDays))
	if err != nil {
		return nil, fmt.Errorf("list managed events: %w: %v", ErrCalendarProvider, err)
	}
	for _, event := range existing {
		if err := sync.provider.DeleteEvent(event.ID); err != nil {
			sync.log.WithFields(logrus.Fields{
				"user_id":  userID,
				"event_id": event.ID,
			}).Warnf("calendar delete failed, continuing: %v", err)
		}
	}

	created := make([]models.CalendarEvent, 0, projectedCycles*3)
	for cycle := 0; cycle < projectedCycles; cycle++ {
		cycleStart := dateOnly(lastPeriodStart).AddDate(0, 0, cycle*templateCycleDays)
		for _, event := range projectCycleEvents(calendarID, cycleStart) {
			stored, err := sync.provider.CreateEvent(calendarID, event)
			if err != nil {
				sync.log.WithFields(logrus.Fields{
					"user_id": userID,
					"type":    event.Type,
					"start":   event.StartDate.Format("2006-01-02"),
				}).Warnf("calendar create failed, continuing: %v", err)
				continue
			}
			created = append(created, stored)
		}
	}

	sync.log.WithFields(logrus.Fields{
		"user_id": userID,
		"cleared": len(existing),
		"created": len(created),
	}).Debug("calendar sync finished")
	return created, nil
}

func projectCycleEvents(calendarID string, cycleStart time.Time) []models.CalendarEvent {
	return []models.CalendarEvent{
		{
			CalendarID: calendarID,
			Type:       models.CalendarEventPeriod,
			Title:      "🩸 Period",
			StartDate:  cycleStart,
			EndDate:    cycleStart.AddDate(0, 0, templatePeriodDays),
			AllDay:     true,
			Notes:      "Predicted period days. #FF4444",
		},
		{
			CalendarID: calendarID,
			Type:       models.CalendarEventFertile,
			Title:      "🌱 Fertile window",
			StartDate:  cycleStart.AddDate(0, 0, fertileStartOffset),
			EndDate:    cycleStart.AddDate(0, 0, fertileEndOffset),
			AllDay:     true,
			Notes:      "Higher chance of conception. #7CB342",
		},
		{
			CalendarID: calendarID,
			Type:       models.CalendarEventOvulation,
			Title:      "🥚 Ovulation",
			StartDate:  cycleStart.AddDate(0, 0, ovulationOffset),
			EndDate:    cycleStart.AddDate(0, 0, ovulationOffset+1),
			AllDay:     true,
			Notes:      "Estimated ovulation day. #9B59B6",
		},
	}
}
