package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/selene/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileRow struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Document  string    `gorm:"column:document;not null"`
	Version   int64     `gorm:"column:version;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (profileRow) TableName() string { return "cycle_profiles" }

// ProfileStore keeps one versioned document row per user. Transact performs
// a single optimistic attempt: the write only lands when the version read at
// the start is still current, so concurrent writers never clobber each
// other's sub-field appends.
type ProfileStore struct {
	database *gorm.DB
}

func NewProfileStore(database *gorm.DB) *ProfileStore {
	return &ProfileStore{database: database}
}

func (store *ProfileStore) Get(userID string) (models.UserCycleProfile, bool, error) {
	var row profileRow
	err := store.database.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserCycleProfile{}, false, nil
	}
	if err != nil {
		return models.UserCycleProfile{}, false, fmt.Errorf("load profile row: %w", err)
	}

	profile, err := decodeProfileDocument(row.Document)
	if err != nil {
		return models.UserCycleProfile{}, false, err
	}
	return profile, true, nil
}

func (store *ProfileStore) Transact(userID string, mutate func(profile *models.UserCycleProfile, exists bool) error) (bool, error) {
	var row profileRow
	exists := true
	err := store.database.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		exists = false
	} else if err != nil {
		return false, fmt.Errorf("load profile row: %w", err)
	}

	var profile models.UserCycleProfile
	if exists {
		profile, err = decodeProfileDocument(row.Document)
		if err != nil {
			return false, err
		}
	}

	if err := mutate(&profile, exists); err != nil {
		return false, err
	}

	document, err := json.Marshal(profile)
	if err != nil {
		return false, fmt.Errorf("encode profile document: %w", err)
	}

	if !exists {
		created := store.database.Clauses(clause.OnConflict{DoNothing: true}).Create(&profileRow{
			UserID:    userID,
			Document:  string(document),
			Version:   1,
			UpdatedAt: profile.UpdatedAt,
		})
		if created.Error != nil {
			return false, fmt.Errorf("create profile row: %w", created.Error)
		}
		// RowsAffected 0 means another writer created the row first.
		return created.RowsAffected == 1, nil
	}

	updated := store.database.Model(&profileRow{}).
		Where("user_id = ? AND version = ?", userID, row.Version).
		Updates(map[string]any{
			"document":   string(document),
			"version":    row.Version + 1,
			"updated_at": profile.UpdatedAt,
		})
	if updated.Error != nil {
		return false, fmt.Errorf("update profile row: %w", updated.Error)
	}
	return updated.RowsAffected == 1, nil
}

func (store *ProfileStore) ListUserIDs() ([]string, error) {
	userIDs := make([]string, 0)
	if err := store.database.Model(&profileRow{}).Order("user_id ASC").Pluck("user_id", &userIDs).Error; err != nil {
		return nil, fmt.Errorf("list profile user ids: %w", err)
	}
	return userIDs, nil
}

func decodeProfileDocument(document string) (models.UserCycleProfile, error) {
	var profile models.UserCycleProfile
	if err := json.Unmarshal([]byte(document), &profile); err != nil {
		return models.UserCycleProfile{}, fmt.Errorf("decode profile document: %w", err)
	}
	if profile.CycleHistory == nil {
		profile.CycleHistory = []models.CycleRecord{}
	}
	return profile, nil
}
