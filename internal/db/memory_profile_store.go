package db

import (
	"sort"
	"sync"

	"github.com/terraincognita07/selene/internal/models"
)

type memoryProfileEntry struct {
	profile models.UserCycleProfile
	version int64
}

// MemoryProfileStore mirrors ProfileStore semantics in process memory,
// including the optimistic version check. Tests and ephemeral runs use it in
// place of the SQLite-backed store.
type MemoryProfileStore struct {
	mu       sync.Mutex
	profiles map[string]memoryProfileEntry
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]memoryProfileEntry)}
}

func (store *MemoryProfileStore) Get(userID string) (models.UserCycleProfile, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, exists := store.profiles[userID]
	if !exists {
		return models.UserCycleProfile{}, false, nil
	}
	return entry.profile.Clone(), true, nil
}

func (store *MemoryProfileStore) Transact(userID string, mutate func(profile *models.UserCycleProfile, exists bool) error) (bool, error) {
	store.mu.Lock()
	entry, exists := store.profiles[userID]
	snapshot := models.UserCycleProfile{}
	if exists {
		snapshot = entry.profile.Clone()
	}
	baseVersion := entry.version
	store.mu.Unlock()

	// The callback runs outside the lock, mirroring the remote store's
	// read-then-conditional-write round trip so that real interleavings can
	// surface conflicts.
	if err := mutate(&snapshot, exists); err != nil {
		return false, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	current, existsNow := store.profiles[userID]
	if existsNow != exists || current.version != baseVersion {
		return false, nil
	}
	store.profiles[userID] = memoryProfileEntry{
		profile: snapshot.Clone(),
		version: baseVersion + 1,
	}
	return true, nil
}

func (store *MemoryProfileStore) ListUserIDs() ([]string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	userIDs := make([]string, 0, len(store.profiles))
	for userID := range store.profiles {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)
	return userIDs, nil
}
