package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/kerbaras/mapleseed/pkg/sources"
)

// PackStore is the persisted collection backing the graphic pack index.
type PackStore interface {
	FindAll() ([]data.GraphicPack, error)
	Insert(pack data.GraphicPack) error
	Count() (int, error)
}

type GraphicPackOption func(*GraphicPackIndex)

// WithDedupe drops packs whose name and folder repeat for the same title
// while building.
func WithDedupe() GraphicPackOption {
	return func(g *GraphicPackIndex) { g.dedupe = true }
}

// WithPackSource seeds an empty store from remote on Load.
func WithPackSource(remote sources.PackSource) GraphicPackOption {
	return func(g *GraphicPackIndex) { g.remote = remote }
}

// GraphicPackIndex groups graphic packs by normalized title id. It is built
// once by Load and is not a live view of the store.
type GraphicPackIndex struct {
	store  PackStore
	remote sources.PackSource
	dedupe bool

	mu      sync.RWMutex
	byTitle map[string][]data.GraphicPack
}

func NewGraphicPackIndex(store PackStore, opts ...GraphicPackOption) *GraphicPackIndex {
	g := &GraphicPackIndex{store: store, byTitle: make(map[string][]data.GraphicPack)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load builds the index from the store. ctx bounds the remote seed only.
func (g *GraphicPackIndex) Load(ctx context.Context) error {
	if g.remote != nil {
		if err := g.seed(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("Warning: failed to seed graphic packs: %v", err)
		}
	}

	packs, err := g.store.FindAll()
	if err != nil {
		return fmt.Errorf("failed to load graphic packs: %w", err)
	}

	index := make(map[string][]data.GraphicPack)
	seen := make(map[string]struct{})
	for _, pack := range packs {
		id := data.NormalizeID(pack.TitleID)
		if g.dedupe {
			key := id + "/" + pack.Name + "/" + pack.Folder
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		index[id] = append(index[id], pack)
	}

	g.mu.Lock()
	g.byTitle = index
	g.mu.Unlock()
	return nil
}

func (g *GraphicPackIndex) seed(ctx context.Context) error {
	n, err := g.store.Count()
	if err != nil || n > 0 {
		return err
	}

	packs, err := g.remote.FetchPacks(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(packs))
	for _, pack := range packs {
		// packs without an id, or repeating one, still get stored
		if _, dup := seen[pack.ID]; pack.ID == "" || dup {
			pack.ID = uuid.NewString()
		}
		seen[pack.ID] = struct{}{}
		if err := g.store.Insert(pack); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the packs for id in insertion order. Titles without packs get
// an empty slice.
func (g *GraphicPackIndex) Find(id string) []data.GraphicPack {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]data.GraphicPack{}, g.byTitle[data.NormalizeID(id)]...)
}

// Titles is the number of titles with at least one pack.
func (g *GraphicPackIndex) Titles() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.byTitle)
}
