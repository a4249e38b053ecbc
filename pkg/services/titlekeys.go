package services

import (
	"context"
	"log"
	"strings"
	"sync/atomic"

	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/kerbaras/mapleseed/pkg/sources"
)

// KeyResult is delivered by ResolveAsync.
type KeyResult struct {
	Key *data.TitleKey
	Err error
}

type keySet struct {
	keys []data.TitleKey
	byID map[string]int // first index per uppercase id
}

func newKeySet(keys []data.TitleKey) *keySet {
	set := &keySet{keys: keys, byID: make(map[string]int, len(keys))}
	for i, key := range keys {
		id := strings.ToUpper(key.TitleID)
		if _, ok := set.byID[id]; !ok {
			set.byID[id] = i
		}
	}
	return set
}

// TitleKeyResolver serves title keys from a process-lifetime cache filled
// from the live key site, or from the bundled snapshot when the site fails.
// The cache is never invalidated.
//
// Two concurrent first calls may both fetch. Fetching is side-effect free, so
// the last store simply wins.
type TitleKeyResolver struct {
	remote  sources.KeyFetcher
	offline sources.KeySnapshot
	cache   atomic.Pointer[keySet]
}

func NewTitleKeyResolver(remote sources.KeyFetcher, offline sources.KeySnapshot) *TitleKeyResolver {
	return &TitleKeyResolver{remote: remote, offline: offline}
}

// Loaded reports whether the cache has been populated.
func (r *TitleKeyResolver) Loaded() bool {
	return r.cache.Load() != nil
}

func (r *TitleKeyResolver) load(ctx context.Context) (*keySet, error) {
	if set := r.cache.Load(); set != nil {
		return set, nil
	}

	keys, err := r.remote.FetchAll(ctx)
	if err != nil {
		log.Printf("Warning: title key source %s unavailable, falling back to offline snapshot: %v", r.remote.Name(), err)
		keys, err = r.offline.Decode()
		if err != nil {
			return nil, err
		}
	}

	set := newKeySet(keys)
	r.cache.Store(set)
	return set, nil
}

// Resolve returns the key for id, or nil if no key is known. The only error
// is a corrupt offline snapshot.
func (r *TitleKeyResolver) Resolve(ctx context.Context, id string) (*data.TitleKey, error) {
	set, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i, ok := set.byID[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return nil, nil
	}
	key := set.keys[i]
	return &key, nil
}

// ResolveAsync runs Resolve in the background.
func (r *TitleKeyResolver) ResolveAsync(ctx context.Context, id string) <-chan KeyResult {
	out := make(chan KeyResult, 1)
	go func() {
		key, err := r.Resolve(ctx, id)
		out <- KeyResult{Key: key, Err: err}
	}()
	return out
}
