package services

import (
	"context"

	"github.com/jmgilman/go/errors"
	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/kerbaras/mapleseed/pkg/sources"
)

type TitleResult struct {
	Title *data.Title
	Err   error
}

// TitleResolver answers title lookups from the owned library first and the
// remote catalog second. Owned entries always win.
type TitleResolver struct {
	library *TitleLibrary
	catalog sources.TitleCatalog
}

func NewTitleResolver(library *TitleLibrary, catalog sources.TitleCatalog) *TitleResolver {
	return &TitleResolver{library: library, catalog: catalog}
}

// ResolveByID returns nil, nil when neither source knows id. An empty id
// short-circuits without touching either source.
func (r *TitleResolver) ResolveByID(ctx context.Context, id string) (*data.Title, error) {
	id = data.NormalizeID(id)
	if id == "" {
		return nil, nil
	}

	if title, ok := r.library.Find(id); ok {
		return title, nil
	}

	titles, err := r.catalog.Find(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeUnavailable, "title catalog lookup for %s failed", id)
	}
	if len(titles) == 0 {
		return nil, nil
	}
	for _, title := range titles {
		if data.NormalizeID(title.ID) == id {
			return &title, nil
		}
	}
	// prefix match from the catalog
	title := titles[0]
	return &title, nil
}

func (r *TitleResolver) ResolveByIDAsync(ctx context.Context, id string) <-chan TitleResult {
	out := make(chan TitleResult, 1)
	go func() {
		title, err := r.ResolveByID(ctx, id)
		out <- TitleResult{Title: title, Err: err}
	}()
	return out
}
