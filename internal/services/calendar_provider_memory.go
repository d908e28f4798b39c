package services

import (
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

var ErrEventNotFound = errors.New("calendar event not found")

// MemoryCalendarProvider keeps events in process memory. It backs tests and
// runs without a database-backed device calendar.
type MemoryCalendarProvider struct {
	mu     sync.Mutex
	nextID int
	events map[string]models.CalendarEvent
}

func NewMemoryCalendarProvider() *MemoryCalendarProvider {
	return &MemoryCalendarProvider{events: make(map[string]models.CalendarEvent)}
}

func (provider *MemoryCalendarProvider) ListEvents(calendarID string, from time.Time, to time.Time) ([]models.CalendarEvent, error) {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	matched := make([]models.CalendarEvent, 0)
	for _, event := range provider.events {
		if event.CalendarID != calendarID {
			continue
		}
		if event.StartDate.Before(from) || event.StartDate.After(to) {
			continue
		}
		matched = append(matched, event)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].StartDate.Equal(matched[j].StartDate) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].StartDate.Before(matched[j].StartDate)
	})
	return matched, nil
}

func (provider *MemoryCalendarProvider) CreateEvent(calendarID string, event models.CalendarEvent) (models.CalendarEvent, error) {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	provider.nextID++
	event.ID = "mem-" + strconv.Itoa(provider.nextID)
	event.CalendarID = calendarID
	event.CreatedAt = time.Now().UTC()
	provider.events[event.ID] = event
	return event, nil
}

func (provider *MemoryCalendarProvider) DeleteEvent(eventID string) error {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	if _, exists := provider.events[eventID]; !exists {
		return ErrEventNotFound
	}
	delete(provider.events, eventID)
	return nil
}
