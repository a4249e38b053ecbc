package services

import (
	"fmt"
	"sync"

	"github.com/jmgilman/go/errors"
	"github.com/kerbaras/mapleseed/pkg/data"
)

// TitleStore is the persisted collection backing the owned library.
type TitleStore interface {
	FindAll() ([]data.Title, error)
	Upsert(title data.Title) error
}

// TitleLibrary is the set of titles the user owns. It is loaded once from
// the store; additions are persisted and announced to subscribers.
type TitleLibrary struct {
	store TitleStore

	mu          sync.RWMutex
	titles      []data.Title
	byID        map[string]int
	subscribers []func(data.Title)
}

func NewTitleLibrary(store TitleStore) *TitleLibrary {
	return &TitleLibrary{store: store, byID: make(map[string]int)}
}

// Load replaces the in-memory set with the persisted titles. It holds the
// lock across the read so a concurrent Add is never lost.
func (l *TitleLibrary) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	titles, err := l.store.FindAll()
	if err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}

	l.titles = l.titles[:0]
	l.byID = make(map[string]int, len(titles))
	for _, title := range titles {
		l.put(title)
	}
	return nil
}

func (l *TitleLibrary) put(title data.Title) {
	title.ID = data.NormalizeID(title.ID)
	if i, ok := l.byID[title.ID]; ok {
		l.titles[i] = title
		return
	}
	l.byID[title.ID] = len(l.titles)
	l.titles = append(l.titles, title)
}

// Add persists title and notifies subscribers. Adding an id that is already
// owned replaces the stored entry.
func (l *TitleLibrary) Add(title data.Title) error {
	title.ID = data.NormalizeID(title.ID)
	if title.ID == "" {
		return errors.New(errors.CodeInvalidInput, "title id is required")
	}

	l.mu.Lock()
	if err := l.store.Upsert(title); err != nil {
		l.mu.Unlock()
		return fmt.Errorf("failed to save title %s: %w", title.ID, err)
	}
	l.put(title)
	subscribers := append([]func(data.Title){}, l.subscribers...)
	l.mu.Unlock()

	for _, fn := range subscribers {
		fn(title)
	}
	return nil
}

// OnAdd registers fn to be called after each successful Add.
func (l *TitleLibrary) OnAdd(fn func(data.Title)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, fn)
}

// Find looks up an already-normalized id.
func (l *TitleLibrary) Find(id string) (*data.Title, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.byID[id]
	if !ok {
		return nil, false
	}
	title := l.titles[i]
	return &title, true
}

// List returns a copy of the owned titles in insertion order.
func (l *TitleLibrary) List() []data.Title {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]data.Title{}, l.titles...)
}

func (l *TitleLibrary) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.titles)
}
