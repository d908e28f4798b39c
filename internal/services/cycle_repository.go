package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

const defaultTransactionRetries = 5

// ProfileStore is the document store boundary. Transact performs a single
// optimistic read-mutate-conditional-write attempt: committed reports false
// when a concurrent writer got in between the read and the write, in which
// case nothing was stored and the caller may retry. Errors returned by the
// mutate callback abort the attempt without writing.
type ProfileStore interface {
	Get(userID string) (models.UserCycleProfile, bool, error)
	Transact(userID string, mutate func(profile *models.UserCycleProfile, exists bool) error) (committed bool, err error)
	ListUserIDs() ([]string, error)
}

// CycleRepository owns every mutation of the per-user cycle document. All
// writes are serialized per user through the store's versioned transaction,
// retried a bounded number of times under contention.
type CycleRepository struct {
	store   ProfileStore
	retries int
	now     func() time.Time
}

func NewCycleRepository(store ProfileStore) *CycleRepository {
	return NewCycleRepositoryWithRetries(store, defaultTransactionRetries)
}

// NewCycleRepositoryWithRetries overrides the conflict retry budget, mainly
// for callers that expect heavier per-document contention than the default
// accounts for.
func NewCycleRepositoryWithRetries(store ProfileStore, retries int) *CycleRepository {
	if retries < 1 {
		retries = 1
	}
	return &CycleRepository{
		store:   store,
		retries: retries,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (repo *CycleRepository) FetchProfile(userID string) (models.UserCycleProfile, error) {
	profile, exists, err := repo.store.Get(userID)
	if err != nil {
		return models.UserCycleProfile{}, fmt.Errorf("fetch profile: %w", err)
	}
	if !exists {
		return models.UserCycleProfile{}, ErrProfileNotFound
	}
	return profile, nil
}

// UpsertPeriodStart records a new period start. The end date from the
// previous period is cleared; history and insights are preserved.
func (repo *CycleRepository) UpsertPeriodStart(userID string, start time.Time) (models.UserCycleProfile, error) {
	return repo.transact(userID, func(profile *models.UserCycleProfile, exists bool) error {
		if !exists {
			*profile = models.NewUserCycleProfile(userID)
		}
		profile.LastPeriodStart = &start
		profile.PeriodEndDate = nil
		return nil
	})
}

// SetPeriodEnd closes the currently open period. A period must have been
// started first, may not end before it began, and may only be closed once:
// the end date stays set until the next UpsertPeriodStart clears it, so a
// retried end request fails instead of closing the same period twice.
func (repo *CycleRepository) SetPeriodEnd(userID string, end time.Time) (models.UserCycleProfile, error) {
	return repo.transact(userID, func(profile *models.UserCycleProfile, exists bool) error {
		if !exists || profile.LastPeriodStart == nil {
			return fmt.Errorf("no open period: %w", ErrInvalidState)
		}
		if profile.PeriodEndDate != nil {
			return fmt.Errorf("period already ended: %w", ErrInvalidState)
		}
		if end.Before(*profile.LastPeriodStart) {
			return fmt.Errorf("period end before start: %w", ErrInvalidState)
		}
		profile.PeriodEndDate = &end
		return nil
	})
}

func (repo *CycleRepository) AppendCycle(userID string, cycle models.CycleRecord) (models.UserCycleProfile, error) {
	return repo.transact(userID, func(profile *models.UserCycleProfile, exists bool) error {
		if !exists {
			return ErrProfileNotFound
		}
		if cycle.Symptoms == nil {
			cycle.Symptoms = []models.SymptomRecord{}
		}
		profile.CycleHistory = append(profile.CycleHistory, cycle)
		return nil
	})
}

// AppendSymptom attaches a symptom to an already recorded cycle. The symptom
// date must fall inside the cycle's start/end interval; recorded cycles are
// otherwise immutable.
func (repo *CycleRepository) AppendSymptom(userID string, symptom models.SymptomRecord, cycleIndex int) (models.UserCycleProfile, error) {
	return repo.transact(userID, func(profile *models.UserCycleProfile, exists bool) error {
		if !exists {
			return ErrProfileNotFound
		}
		if cycleIndex < 0 || cycleIndex >= len(profile.CycleHistory) {
			return fmt.Errorf("cycle %d of %d: %w", cycleIndex, len(profile.CycleHistory), ErrCycleIndexOutOfRange)
		}
		cycle := &profile.CycleHistory[cycleIndex]
		if symptom.Date.Before(cycle.StartDate) || symptom.Date.After(cycle.EndDate) {
			return fmt.Errorf("symptom date outside cycle interval: %w", ErrInvalidState)
		}
		cycle.Symptoms = append(cycle.Symptoms, symptom)
		return nil
	})
}

// MergeInsights writes derived statistics unconditionally, creating the
// profile when it does not exist yet (merge semantics).
func (repo *CycleRepository) MergeInsights(userID string, insight models.CycleInsight) (models.UserCycleProfile, error) {
	return repo.transact(userID, func(profile *models.UserCycleProfile, exists bool) error {
		if !exists {
			*profile = models.NewUserCycleProfile(userID)
		}
		profile.Insights = &insight
		return nil
	})
}

func (repo *CycleRepository) ListUserIDs() ([]string, error) {
	return repo.store.ListUserIDs()
}

func (repo *CycleRepository) transact(userID string, mutate func(profile *models.UserCycleProfile, exists bool) error) (models.UserCycleProfile, error) {
	var updated models.UserCycleProfile
	for attempt := 0; attempt < repo.retries; attempt++ {
		committed, err := repo.store.Transact(userID, func(profile *models.UserCycleProfile, exists bool) error {
			if err := mutate(profile, exists); err != nil {
				return err
			}
			profile.UpdatedAt = repo.now()
			updated = profile.Clone()
			return nil
		})
		if err != nil {
			return models.UserCycleProfile{}, err
		}
		if committed {
			return updated, nil
		}
	}
	return models.UserCycleProfile{}, ErrWriteConflict
}
