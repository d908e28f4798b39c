package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/selene/internal/models"
	"gorm.io/gorm"
)

var ErrCalendarEventNotFound = errors.New("calendar event not found")

// CalendarStore is the production calendar provider: a device-local table
// standing in for the platform calendar API, isolated behind the same
// list/create/delete surface.
type CalendarStore struct {
	database *gorm.DB
}

func NewCalendarStore(database *gorm.DB) *CalendarStore {
	return &CalendarStore{database: database}
}

func (store *CalendarStore) ListEvents(calendarID string, from time.Time, to time.Time) ([]models.CalendarEvent, error) {
	events := make([]models.CalendarEvent, 0)
	if err := store.database.
		Where("calendar_id = ? AND start_date >= ? AND start_date <= ?", calendarID, from, to).
		Order("start_date ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	return events, nil
}

func (store *CalendarStore) CreateEvent(calendarID string, event models.CalendarEvent) (models.CalendarEvent, error) {
	event.ID = uuid.NewString()
	event.CalendarID = calendarID
	event.CreatedAt = time.Now().UTC()
	if err := store.database.Create(&event).Error; err != nil {
		return models.CalendarEvent{}, fmt.Errorf("create calendar event: %w", err)
	}
	return event, nil
}

func (store *CalendarStore) DeleteEvent(eventID string) error {
	result := store.database.Where("id = ?", eventID).Delete(&models.CalendarEvent{})
	if result.Error != nil {
		return fmt.Errorf("delete calendar event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCalendarEventNotFound
	}
	return nil
}
