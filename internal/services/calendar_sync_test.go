package services

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/selene/internal/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSyncProjectsThreeCycles(t *testing.T) {
	t.Parallel()

	provider := NewMemoryCalendarProvider()
	sync := NewCalendarSynchronizer(provider, quietLogger())

	now := time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)
	lastStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	events, err := sync.Sync("u1", lastStart, now)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if len(events) != 9 {
		t.Fatalf("expected 9 events (3 per cycle), got %d", len(events))
	}

	counts := make(map[string]int)
	for _, event := range events {
		counts[event.Type]++
		if !event.AllDay {
			t.Fatalf("expected all-day event, got %+v", event)
		}
	}
	for _, eventType := range []string{models.CalendarEventPeriod, models.CalendarEventFertile, models.CalendarEventOvulation} {
		if counts[eventType] != 3 {
			t.Fatalf("expected 3 %s events, got %d", eventType, counts[eventType])
		}
	}
}

func TestSyncEventOffsets(t *testing.T) {
	t.Parallel()

	provider := NewMemoryCalendarProvider()
	sync := NewCalendarSynchronizer(provider, quietLogger())

	lastStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	events, err := sync.Sync("u1", lastStart, lastStart)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	byType := make(map[string]models.CalendarEvent)
	for _, event := range events {
		if _, seen := byType[event.Type]; !seen {
			byType[event.Type] = event
		}
	}

	period := byType[models.CalendarEventPeriod]
	if !period.StartDate.Equal(lastStart) || !period.EndDate.Equal(lastStart.AddDate(0, 0, 5)) {
		t.Fatalf("unexpected period interval %v-%v", period.StartDate, period.EndDate)
	}
	fertile := byType[models.CalendarEventFertile]
	if !fertile.StartDate.Equal(lastStart.AddDate(0, 0, 11)) || !fertile.EndDate.Equal(lastStart.AddDate(0, 0, 17)) {
		t.Fatalf("unexpected fertile interval %v-%v", fertile.StartDate, fertile.EndDate)
	}
	ovulation := byType[models.CalendarEventOvulation]
	if !ovulation.StartDate.Equal(lastStart.AddDate(0, 0, 14)) || !ovulation.EndDate.Equal(lastStart.AddDate(0, 0, 15)) {
		t.Fatalf("unexpected ovulation interval %v-%v", ovulation.StartDate, ovulation.EndDate)
	}
}

func TestSyncTwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	provider := NewMemoryCalendarProvider()
	sync := NewCalendarSynchronizer(provider, quietLogger())

	lastStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	for _, now := range []time.Time{lastStart, lastStart.AddDate(0, 0, 10)} {
		if _, err := sync.Sync("u1", lastStart, now); err != nil {
			t.Fatalf("sync at %v failed: %v", now, err)
		}
		if _, err := sync.Sync("u1", lastStart, now); err != nil {
			t.Fatalf("repeat sync at %v failed: %v", now, err)
		}
	}

	remaining, err := provider.ListEvents(ManagedCalendarID("u1"), lastStart.AddDate(0, 0, -30), lastStart.AddDate(0, 0, 120))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, event := range remaining {
		key := event.Title + "|" + event.StartDate.Format("2006-01-02")
		if seen[key] {
			t.Fatalf("duplicate event after double sync: %s", key)
		}
		seen[key] = true
	}
}

func TestSyncMidPeriodReplacesPastEvents(t *testing.T) {
	t.Parallel()

	provider := NewMemoryCalendarProvider()
	sync := NewCalendarSynchronizer(provider, quietLogger())

	// The period start is already behind now, so its events sit before today
	// and must still be cleared on the next sync.
	lastStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	now := lastStart.AddDate(0, 0, 3)

	if _, err := sync.Sync("u1", lastStart, now); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if _, err := sync.Sync("u1", lastStart, now); err != nil {
		t.Fatalf("second sync failed: %v", err)
	}

	events, err := provider.ListEvents(ManagedCalendarID("u1"), lastStart.AddDate(0, 0, -30), lastStart.AddDate(0, 0, 120))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(events) != 9 {
		t.Fatalf("expected 9 events after repeated mid-period syncs, got %d", len(events))
	}
}

func TestSyncContinuesPastProviderFailures(t *testing.T) {
	t.Parallel()

	inner := NewMemoryCalendarProvider()
	provider := &flakyProvider{inner: inner, failCreates: 2, failDeletes: true}
	sync := NewCalendarSynchronizer(provider, quietLogger())

	lastStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if _, err := sync.Sync("u1", lastStart, lastStart); err != nil {
		t.Fatalf("seed sync failed: %v", err)
	}

	events, err := sync.Sync("u1", lastStart, lastStart)
	if err != nil {
		t.Fatalf("expected best-effort sync to succeed, got %v", err)
	}
	if len(events) >= 9 {
		t.Fatalf("expected some creates to be skipped, got %d", len(events))
	}
}

func TestSyncFailsWhenListingFails(t *testing.T) {
	t.Parallel()

	provider := &flakyProvider{inner: NewMemoryCalendarProvider(), failList: true}
	sync := NewCalendarSynchronizer(provider, quietLogger())

	_, err := sync.Sync("u1", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), time.Now())
	if !errors.Is(err, ErrCalendarProvider) {
		t.Fatalf("expected ErrCalendarProvider, got %v", err)
	}
}

type flakyProvider struct {
	inner       *MemoryCalendarProvider
	failList    bool
	failDeletes bool
	failCreates int
}

func (provider *flakyProvider) ListEvents(calendarID string, from time.Time, to time.Time) ([]models.CalendarEvent, error) {
	if provider.failList {
		return nil, errors.New("provider offline")
	}
	return provider.inner.ListEvents(calendarID, from, to)
}

func (provider *flakyProvider) CreateEvent(calendarID string, event models.CalendarEvent) (models.CalendarEvent, error) {
	if provider.failCreates > 0 {
		provider.failCreates--
		return models.CalendarEvent{}, errors.New("create rejected")
	}
	return provider.inner.CreateEvent(calendarID, event)
}

func (provider *flakyProvider) DeleteEvent(eventID string) error {
	if provider.failDeletes {
		return errors.New("delete rejected")
	}
	return provider.inner.DeleteEvent(eventID)
}
