package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kerbaras/mapleseed/pkg/data"
)

// ConfigCollection is the persisted collection holding the config record.
type ConfigCollection interface {
	Count() (int, error)
	FindAll() ([]data.Config, error)
	Insert(cfg data.Config) error
	Update(cfg data.Config) error
	EnsureIndex() error
}

// ConfigStore owns the single persisted Config record.
type ConfigStore struct {
	coll ConfigCollection

	// serializes creation of the default record
	mu sync.Mutex
}

func NewConfigStore(coll ConfigCollection) *ConfigStore {
	return &ConfigStore{coll: coll}
}

// DefaultConfig is the record created on first access.
func DefaultConfig() data.Config {
	return data.Config{
		Index:                uuid.NewString(),
		Language:             "en",
		MaxParallelDownloads: 2,
	}
}

// Get returns the stored config, creating and indexing the default record
// when the store is empty.
func (s *ConfigStore) Get() (*data.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.coll.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count settings: %w", err)
	}

	if n == 0 {
		if err := s.coll.Insert(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default settings: %w", err)
		}
		if err := s.coll.EnsureIndex(); err != nil {
			return nil, err
		}
	}

	configs, err := s.coll.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("settings record disappeared")
	}
	return &configs[0], nil
}

// Save overwrites the record keyed by cfg.Index and returns cfg unchanged.
// Last writer wins.
func (s *ConfigStore) Save(cfg *data.Config) (*data.Config, error) {
	if err := s.coll.Update(*cfg); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return cfg, nil
}
