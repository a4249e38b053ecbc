package sources

import (
	"context"

	"github.com/kerbaras/mapleseed/pkg/data"
)

// TitleCatalog is the global, read-only title catalog.
type TitleCatalog interface {
	Find(ctx context.Context, id string) ([]data.Title, error)
}

// KeyFetcher returns the complete live title key list.
type KeyFetcher interface {
	Name() string
	FetchAll(ctx context.Context) ([]data.TitleKey, error)
}

// KeySnapshot decodes the title key list bundled with the binary.
type KeySnapshot interface {
	Decode() ([]data.TitleKey, error)
}

// PackSource lists every known graphic pack.
type PackSource interface {
	FetchPacks(ctx context.Context) ([]data.GraphicPack, error)
}
