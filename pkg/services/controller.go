package services

import (
	"context"
	"log"
	"sync"

	"github.com/jmgilman/go/errors"
	"github.com/kerbaras/mapleseed/pkg/config"
	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/kerbaras/mapleseed/pkg/sources"
	"golang.org/x/sync/errgroup"
)

// Dependencies lets callers swap the remote sources, the snapshot and the
// download queue. Nil fields get the production implementations, except
// Packs: without it the graphic pack store is never seeded.
type Dependencies struct {
	Repo     *data.Repository
	Keys     sources.KeyFetcher
	Snapshot sources.KeySnapshot
	Catalog  sources.TitleCatalog
	Packs    sources.PackSource
	Queue    Queue
}

// Controller owns every resolver, the readiness barrier and the store. It is
// created once at startup and released with Close.
type Controller struct {
	repo       *data.Repository
	configs    *ConfigStore
	keys       *TitleKeyResolver
	library    *TitleLibrary
	titles     *TitleResolver
	packs      *GraphicPackIndex
	barrier    *ReadinessBarrier
	downloader *Downloader
	handoff    *DownloadHandoff

	startOnce sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
}

// NewController opens the store described by settings and wires the
// production sources. A store that cannot be opened or a corrupt offline
// snapshot is fatal.
func NewController(settings config.Settings) (*Controller, error) {
	repo, err := data.OpenRepository(settings.StoreDriver, settings.StorePath())
	if err != nil {
		return nil, err
	}

	pixxy := sources.NewPixxy(settings.APIBaseURL, settings.HTTPTimeout)
	c, err := NewControllerWithDependencies(settings, Dependencies{
		Repo:    repo,
		Catalog: pixxy,
		Packs:   pixxy,
	})
	if err != nil {
		repo.Close()
		return nil, err
	}
	return c, nil
}

func NewControllerWithDependencies(settings config.Settings, deps Dependencies) (*Controller, error) {
	if deps.Repo == nil {
		return nil, errors.New(errors.CodeInvalidConfig, "controller needs a repository")
	}
	if deps.Snapshot == nil {
		deps.Snapshot = sources.NewOfflineSnapshot()
	}
	if deps.Keys == nil {
		deps.Keys = sources.NewTitleKeySite(settings.TitleKeysURL, settings.HTTPTimeout)
	}
	if deps.Catalog == nil {
		deps.Catalog = sources.NewPixxy(settings.APIBaseURL, settings.HTTPTimeout)
	}
	if _, err := deps.Snapshot.Decode(); err != nil {
		return nil, err
	}

	settingsColl, err := data.NewCollection(deps.Repo, data.SettingsCollection, func(c data.Config) string { return c.Index })
	if err != nil {
		return nil, err
	}
	libraryColl, err := data.NewCollection(deps.Repo, data.LibraryCollection, func(t data.Title) string { return t.ID })
	if err != nil {
		return nil, err
	}
	packColl, err := data.NewCollection(deps.Repo, data.GraphicPackCollection, func(p data.GraphicPack) string { return p.ID })
	if err != nil {
		return nil, err
	}

	c := &Controller{repo: deps.Repo}
	c.configs = NewConfigStore(settingsColl)

	queue := deps.Queue
	if queue == nil {
		workers := settings.DownloadWorkers
		if cfg, err := c.configs.Get(); err != nil {
			log.Printf("Warning: failed to read config, using %d download workers: %v", workers, err)
		} else if cfg.MaxParallelDownloads > 0 {
			workers = cfg.MaxParallelDownloads
		}
		c.downloader = NewDownloader(settings.ContentURL, workers, settings.DownloadTimeout)
		queue = c.downloader
	}

	var packOpts []GraphicPackOption
	if deps.Packs != nil {
		packOpts = append(packOpts, WithPackSource(deps.Packs))
	}

	c.keys = NewTitleKeyResolver(deps.Keys, deps.Snapshot)
	c.library = NewTitleLibrary(libraryColl)
	c.titles = NewTitleResolver(c.library, deps.Catalog)
	c.packs = NewGraphicPackIndex(packColl, packOpts...)
	c.barrier = NewReadinessBarrier(settings.ReadyPollInterval, settings.ReadyTimeout, ComponentLibrary, ComponentGraphicPacks)
	c.handoff = NewDownloadHandoff(queue)
	return c, nil
}

// Start loads the library and the graphic pack index concurrently and runs
// the readiness barrier. It returns immediately.
func (c *Controller) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		ctx, c.cancel = context.WithCancel(ctx)

		c.wg.Add(2)
		go func() {
			defer c.wg.Done()
			if err := c.barrier.Run(ctx); err != nil {
				log.Printf("Warning: databases not ready: %v", err)
			}
		}()
		go func() {
			defer c.wg.Done()
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				if err := c.library.Load(); err != nil {
					return err
				}
				c.barrier.MarkLoaded(ComponentLibrary)
				return nil
			})
			g.Go(func() error {
				if err := c.packs.Load(gctx); err != nil {
					return err
				}
				c.barrier.MarkLoaded(ComponentGraphicPacks)
				return nil
			})
			if err := g.Wait(); err != nil {
				log.Printf("Warning: startup load failed: %v", err)
			}
		}()
	})
}

// OnReady registers fn for the one-time ready signal.
func (c *Controller) OnReady(fn func([]Component)) {
	c.barrier.OnReady(fn)
}

// Wait blocks until the controller is ready, the barrier failed, or ctx ends.
func (c *Controller) Wait(ctx context.Context) error {
	return c.barrier.Wait(ctx)
}

func (c *Controller) Ready() bool {
	return c.barrier.Ready()
}

func (c *Controller) Done() <-chan struct{} {
	return c.barrier.Done()
}

// Err reports why the controller failed to become ready, or nil.
func (c *Controller) Err() error {
	return c.barrier.Err()
}

// Loaded lists the required components that finished loading.
func (c *Controller) Loaded() []Component {
	return c.barrier.Loaded()
}

func (c *Controller) Components() []Component {
	return c.barrier.Required()
}

// Summary describes the loaded databases.
type Summary struct {
	Driver      string
	OwnedTitles int
	PackTitles  int
}

func (c *Controller) Summary() Summary {
	return Summary{
		Driver:      c.repo.Driver(),
		OwnedTitles: c.library.Len(),
		PackTitles:  c.packs.Titles(),
	}
}

func (c *Controller) Config() (*data.Config, error) {
	return c.configs.Get()
}

func (c *Controller) SaveConfig(cfg *data.Config) (*data.Config, error) {
	return c.configs.Save(cfg)
}

func (c *Controller) FindTitle(ctx context.Context, id string) (*data.Title, error) {
	return c.titles.ResolveByID(ctx, id)
}

func (c *Controller) FindTitleAsync(ctx context.Context, id string) <-chan TitleResult {
	return c.titles.ResolveByIDAsync(ctx, id)
}

func (c *Controller) FindTitleKey(ctx context.Context, id string) (*data.TitleKey, error) {
	return c.keys.Resolve(ctx, id)
}

func (c *Controller) FindTitleKeyAsync(ctx context.Context, id string) <-chan KeyResult {
	return c.keys.ResolveAsync(ctx, id)
}

func (c *Controller) FindGraphicPacks(id string) []data.GraphicPack {
	return c.packs.Find(id)
}

func (c *Controller) AddOwnedTitle(title data.Title) error {
	return c.library.Add(title)
}

// RegisterLibraryListener subscribes fn to additions to the owned library.
func (c *Controller) RegisterLibraryListener(fn func(data.Title)) {
	c.library.OnAdd(fn)
}

func (c *Controller) Library() []data.Title {
	return c.library.List()
}

// DownloadTitle queues a download for a title the resolver knows. An empty
// destination falls back to the configured title directory. The id is
// forwarded to the queue as given.
func (c *Controller) DownloadTitle(ctx context.Context, id, destination, contentType, version string) error {
	title, err := c.titles.ResolveByID(ctx, id)
	if err != nil {
		return err
	}
	if title == nil {
		return errors.Newf(errors.CodeNotFound, "unknown title %q", id)
	}

	if destination == "" {
		cfg, err := c.configs.Get()
		if err != nil {
			return err
		}
		destination = cfg.TitleDirectory
	}

	return c.handoff.Submit(data.DownloadJob{
		TitleID:     id,
		Destination: destination,
		ContentType: contentType,
		Version:     version,
	})
}

func (c *Controller) DownloadTitleAsync(ctx context.Context, id, destination, contentType, version string) <-chan error {
	out := make(chan error, 1)
	go func() {
		out <- c.DownloadTitle(ctx, id, destination, contentType, version)
	}()
	return out
}

// Progress streams download progress. It is nil when an external queue was
// injected.
func (c *Controller) Progress() <-chan DownloadProgress {
	if c.downloader == nil {
		return nil
	}
	return c.downloader.GetProgressChannel()
}

// Close cancels background work, stops the download queue and releases the
// database handle.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		if c.cancel != nil {
			c.cancel()
		}
		c.wg.Wait()
		if c.downloader != nil {
			c.downloader.Close()
		}
		c.closeErr = c.repo.Close()
	})
	return c.closeErr
}
