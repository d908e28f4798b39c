package db

import "gorm.io/gorm"

type Stores struct {
	Profiles *ProfileStore
	Calendar *CalendarStore
}

func NewStores(database *gorm.DB) *Stores {
	return &Stores{
		Profiles: NewProfileStore(database),
		Calendar: NewCalendarStore(database),
	}
}
