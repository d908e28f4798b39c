package models

import "time"

const (
	CalendarEventPeriod    = "period"
	CalendarEventFertile   = "fertile"
	CalendarEventOvulation = "ovulation"
)

// CalendarEvent is a transient projection into the device calendar. Events
// are regenerated wholesale on every sync, never patched in place.
type CalendarEvent struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	CalendarID string    `json:"calendar_id" gorm:"index:idx_calendar_start;not null"`
	Type       string    `json:"type" gorm:"not null"`
	Title      string    `json:"title" gorm:"not null"`
	StartDate  time.Time `json:"start_date" gorm:"index:idx_calendar_start;not null"`
	EndDate    time.Time `json:"end_date" gorm:"not null"`
	AllDay     bool      `json:"all_day" gorm:"not null;default:true"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}
