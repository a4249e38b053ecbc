package sources

import (
	"context"
	"net/url"
	"time"

	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/kerbaras/mapleseed/pkg/utils"
)

const DefaultAPIBaseURL = "http://api.pixxy.in/"

type Title struct {
	ID          string `json:"titleId"`
	Name        string `json:"name"`
	Region      string `json:"region"`
	ProductCode string `json:"productCode"`
	Version     string `json:"version"`
}

func (t *Title) ToTitle() data.Title {
	return data.Title{
		ID:          data.NormalizeID(t.ID),
		Name:        t.Name,
		Region:      t.Region,
		ProductCode: t.ProductCode,
		Version:     t.Version,
	}
}

type GraphicPack struct {
	ID          string `json:"id"`
	TitleID     string `json:"titleId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Folder      string `json:"folder"`
}

func (g *GraphicPack) ToGraphicPack() data.GraphicPack {
	return data.GraphicPack{
		ID:          g.ID,
		TitleID:     data.NormalizeID(g.TitleID),
		Name:        g.Name,
		Description: g.Description,
		Folder:      g.Folder,
	}
}

// Pixxy is the remote title catalog and graphic pack listing.
type Pixxy struct {
	api *utils.API
}

func NewPixxy(baseURL string, timeout time.Duration) *Pixxy {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &Pixxy{api: utils.NewAPIWithTimeout(baseURL, timeout)}
}

// Find returns the catalog entries matching id. The service matches by
// prefix, so more than one entry may come back.
func (p *Pixxy) Find(ctx context.Context, id string) ([]data.Title, error) {
	var titles []Title
	if err := p.api.Get(ctx, "titles", url.Values{"q": {id}}, &titles); err != nil {
		return nil, err
	}
	out := make([]data.Title, len(titles))
	for i, title := range titles {
		out[i] = title.ToTitle()
	}
	return out, nil
}

func (p *Pixxy) FetchPacks(ctx context.Context) ([]data.GraphicPack, error) {
	var packs []GraphicPack
	if err := p.api.Get(ctx, "graphicpacks", nil, &packs); err != nil {
		return nil, err
	}
	out := make([]data.GraphicPack, len(packs))
	for i, pack := range packs {
		out[i] = pack.ToGraphicPack()
	}
	return out, nil
}
