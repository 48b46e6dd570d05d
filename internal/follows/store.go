package follows

import (
	"comicbot/internal/models"
	"comicbot/internal/providers"
	"comicbot/internal/structures"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"
)

type FollowResult int

const (
	Added FollowResult = iota
	AlreadyFollowing
)

type UnfollowResult int

const (
	Removed UnfollowResult = iota
	NotFollowing
)

type StoreInterface interface {
	Load() error
	Follow(userID string, volume models.VolumeSearchResult) (FollowResult, error)
	Unfollow(userID, name string) (UnfollowResult, error)
	ListFollowed(userID string) []models.FollowedSeries
	FollowersByName() map[string][]string
	Count() int
	Persist() error
}

// Store is the in-memory follow mapping mirrored to disk on every mutation.
// mu serialises each load-modify-persist sequence.
type Store struct {
	mu      sync.Mutex
	data    models.FollowDocument
	files   *FileManager
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewStore(conf *structures.Config, metrics providers.MetricsProviderInterface, logger providers.Logger) StoreInterface {
	return &Store{
		data:    models.FollowDocument{},
		files:   NewFileManager(conf.Persistence.FilePath),
		metrics: metrics,
		logger:  logger,
	}
}

func (s *Store) Load() error {
	doc, err := s.files.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = doc
	s.metrics.SetFollowedTotal(s.countLocked())
	s.logger.Infof(providers.TypeApp, "Loaded %d followed series for %d users from %s", s.countLocked(), len(s.data), s.files.Path())
	return nil
}

func (s *Store) Follow(userID string, volume models.VolumeSearchResult) (FollowResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.data[userID]
	for _, fs := range current {
		if fs.VolumeID == volume.VolumeID {
			return AlreadyFollowing, nil
		}
	}

	next := make([]models.FollowedSeries, len(current), len(current)+1)
	copy(next, current)
	next = append(next, volume.Series())

	if err := s.commitLocked(userID, next); err != nil {
		return Added, err
	}
	return Added, nil
}

// Unfollow removes every followed series of userID whose name matches, ignoring case.
func (s *Store) Unfollow(userID, name string) (UnfollowResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.data[userID]
	next := make([]models.FollowedSeries, 0, len(current))
	for _, fs := range current {
		if !models.SameName(fs.Name, name) {
			next = append(next, fs)
		}
	}
	if len(next) == len(current) {
		return NotFollowing, nil
	}

	if err := s.commitLocked(userID, next); err != nil {
		return Removed, err
	}
	return Removed, nil
}

func (s *Store) ListFollowed(userID string) []models.FollowedSeries {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FollowedSeries, len(s.data[userID]))
	copy(out, s.data[userID])
	return out
}

// FollowersByName maps each folded series name to the ids of the users following it, sorted.
func (s *Store) FollowersByName() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]string, 0, len(s.data))
	for userID := range s.data {
		users = append(users, userID)
	}
	sort.Strings(users)

	out := make(map[string][]string)
	for _, userID := range users {
		for _, fs := range s.data[userID] {
			key := models.FoldName(fs.Name)
			if !slices.Contains(out[key], userID) {
				out[key] = append(out[key], userID)
			}
		}
	}
	return out
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked()
}

func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(s.data)
}

// commitLocked swaps in the new list for userID and persists. On a failed write the previous
// list is restored so memory never runs ahead of disk.
func (s *Store) commitLocked(userID string, next []models.FollowedSeries) error {
	previous, had := s.data[userID]
	if len(next) == 0 {
		delete(s.data, userID)
	} else {
		s.data[userID] = next
	}

	if err := s.persistLocked(s.data); err != nil {
		if had {
			s.data[userID] = previous
		} else {
			delete(s.data, userID)
		}
		return err
	}

	s.metrics.SetFollowedTotal(s.countLocked())
	return nil
}

func (s *Store) persistLocked(doc models.FollowDocument) error {
	start := time.Now()
	err := s.files.Save(doc)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting follow store: %s", err)
		return fmt.Errorf("persist follow store: %w", err)
	}
	return nil
}

func (s *Store) countLocked() int {
	n := 0
	for _, list := range s.data {
		n += len(list)
	}
	return n
}
