package services

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing

type mockKeyFetcher struct {
	calls     atomic.Int32
	fetchFunc func(ctx context.Context) ([]data.TitleKey, error)
}

func (m *mockKeyFetcher) Name() string { return "mock-keys" }

func (m *mockKeyFetcher) FetchAll(ctx context.Context) ([]data.TitleKey, error) {
	m.calls.Add(1)
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx)
	}
	return nil, nil
}

type mockSnapshot struct {
	calls      atomic.Int32
	decodeFunc func() ([]data.TitleKey, error)
}

func (m *mockSnapshot) Decode() ([]data.TitleKey, error) {
	m.calls.Add(1)
	if m.decodeFunc != nil {
		return m.decodeFunc()
	}
	return []data.TitleKey{}, nil
}

type mockCatalog struct {
	calls    atomic.Int32
	findFunc func(ctx context.Context, id string) ([]data.Title, error)
}

func (m *mockCatalog) Find(ctx context.Context, id string) ([]data.Title, error) {
	m.calls.Add(1)
	if m.findFunc != nil {
		return m.findFunc(ctx, id)
	}
	return nil, nil
}

type mockPackSource struct {
	calls     atomic.Int32
	fetchFunc func(ctx context.Context) ([]data.GraphicPack, error)
}

func (m *mockPackSource) FetchPacks(ctx context.Context) ([]data.GraphicPack, error) {
	m.calls.Add(1)
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx)
	}
	return nil, nil
}

type mockQueue struct {
	mu   sync.Mutex
	jobs []data.DownloadJob
	err  error
}

func (m *mockQueue) AddToQueue(job data.DownloadJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.jobs = append(m.jobs, job)
	return nil
}

func (m *mockQueue) Jobs() []data.DownloadJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]data.DownloadJob{}, m.jobs...)
}

// Test helpers

func setupTestRepo(t *testing.T) *data.Repository {
	t.Helper()

	repo, err := data.OpenRepository(data.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupLibrary(t *testing.T, repo *data.Repository) (*TitleLibrary, *data.Collection[data.Title]) {
	t.Helper()

	coll, err := data.NewCollection(repo, data.LibraryCollection, func(t data.Title) string { return t.ID })
	require.NoError(t, err)
	return NewTitleLibrary(coll), coll
}

func setupPackStore(t *testing.T, repo *data.Repository) *data.Collection[data.GraphicPack] {
	t.Helper()

	coll, err := data.NewCollection(repo, data.GraphicPackCollection, func(p data.GraphicPack) string { return p.ID })
	require.NoError(t, err)
	return coll
}

func catalogOf(titles ...data.Title) *mockCatalog {
	return &mockCatalog{
		findFunc: func(ctx context.Context, id string) ([]data.Title, error) {
			var out []data.Title
			for _, title := range titles {
				if title.ID == id {
					out = append(out, title)
				}
			}
			return out, nil
		},
	}
}
