package sources

import (
	"context"
	"time"

	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/kerbaras/mapleseed/pkg/utils"
)

const DefaultTitleKeysURL = "http://wiiu.titlekeys.gq/json"

// TitleKeySite fetches the live title key list.
type TitleKeySite struct {
	api *utils.API
	url string
}

func NewTitleKeySite(url string, timeout time.Duration) *TitleKeySite {
	if url == "" {
		url = DefaultTitleKeysURL
	}
	return &TitleKeySite{api: utils.NewAPIWithTimeout(url, timeout), url: url}
}

func (s *TitleKeySite) Name() string {
	return s.url
}

func (s *TitleKeySite) FetchAll(ctx context.Context) ([]data.TitleKey, error) {
	var keys []data.TitleKey
	if err := s.api.Get(ctx, "", nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}
