package services

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForStatus(t *testing.T, ch <-chan DownloadProgress, status string) DownloadProgress {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case p, ok := <-ch:
			if !ok {
				t.Fatalf("progress channel closed before status %q", status)
			}
			if p.Status == status {
				return p
			}
		case <-timeout:
			t.Fatalf("timed out waiting for status %q", status)
		}
	}
}

func TestNewDownloader(t *testing.T) {
	downloader := NewDownloader("http://example.com/", 0, 0)
	defer downloader.Close()

	if downloader.client == nil {
		t.Error("Downloader client not initialized")
	}
	if downloader.rateLimiter == nil {
		t.Error("Downloader rateLimiter not initialized")
	}
	if downloader.GetProgressChannel() == nil {
		t.Error("GetProgressChannel() returned nil")
	}
	if downloader.baseURL != "http://example.com" {
		t.Errorf("Expected trimmed base URL, got %s", downloader.baseURL)
	}
}

func TestDownloader_NormalizesAndDownloads(t *testing.T) {
	var gotPath, gotVersion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotVersion = r.URL.Query().Get("version")
		w.Write([]byte("content"))
	}))
	defer server.Close()

	dest := t.TempDir()
	downloader := NewDownloader(server.URL, 1, time.Minute)
	defer downloader.Close()

	err := downloader.AddToQueue(data.DownloadJob{TitleID: "0005000e1010ec00", Destination: dest, ContentType: "update", Version: "64"})
	require.NoError(t, err)

	progress := waitForStatus(t, downloader.GetProgressChannel(), "complete")
	assert.Equal(t, "0005000E1010EC00", progress.TitleID)
	assert.Equal(t, int64(len("content")), progress.Bytes)
	assert.Equal(t, "/0005000E1010EC00/update", gotPath)
	assert.Equal(t, "64", gotVersion)

	body, err := os.ReadFile(filepath.Join(dest, "0005000E1010EC00", "update"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(body))
	assert.Equal(t, filepath.Join(dest, "0005000E1010EC00", "update"), progress.Path)
}

func TestDownloader_ReportsErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	downloader := NewDownloader(server.URL, 1, time.Minute)
	defer downloader.Close()

	require.NoError(t, downloader.AddToQueue(data.DownloadJob{TitleID: "ABC", Destination: t.TempDir()}))

	progress := waitForStatus(t, downloader.GetProgressChannel(), "error")
	assert.Error(t, progress.Error)
	assert.Equal(t, "game", progress.ContentType)
}

func TestDownloader_ClosedQueue(t *testing.T) {
	downloader := NewDownloader("http://example.com", 1, time.Minute)
	downloader.Close()
	// second close is a no-op
	downloader.Close()

	err := downloader.AddToQueue(data.DownloadJob{TitleID: "ABC", Destination: "/tmp"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))

	_, ok := <-downloader.GetProgressChannel()
	assert.False(t, ok, "progress channel should be closed")
}

func TestDownloader_RejectsEscapingJobs(t *testing.T) {
	downloader := NewDownloader("http://example.com", 1, time.Minute)
	defer downloader.Close()

	dest := t.TempDir()
	jobs := []data.DownloadJob{
		{TitleID: "../../escaped", Destination: dest},
		{TitleID: `..\escaped`, Destination: dest},
		{TitleID: "..", Destination: dest},
		{TitleID: "", Destination: dest},
		{TitleID: "ABC", Destination: dest, ContentType: "../x"},
		{TitleID: "ABC", Destination: dest, ContentType: "firmware"},
	}
	for _, job := range jobs {
		err := downloader.AddToQueue(job)
		require.Error(t, err, "job %+v", job)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err), "job %+v", job)
	}
}

func TestDownloader_DownloadTitleStaysInDestination(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("content"))
	}))
	defer server.Close()

	downloader := NewDownloader(server.URL, 1, time.Minute)
	defer downloader.Close()

	root := t.TempDir()
	dest := filepath.Join(root, "titles")
	require.NoError(t, os.MkdirAll(dest, 0o755))

	_, _, err := downloader.DownloadTitle(data.DownloadJob{TitleID: "../escaped", Destination: dest, ContentType: "game"})
	require.Error(t, err)
	_, _, err = downloader.DownloadTitle(data.DownloadJob{TitleID: "ABC", Destination: dest, ContentType: "../../escaped"})
	require.Error(t, err)

	assert.Equal(t, int32(0), hits.Load())
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "titles", entries[0].Name())
}

func TestDownloader_CloseAbortsInFlightTransfer(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	downloader := NewDownloader(server.URL, 1, 0)
	require.NoError(t, downloader.AddToQueue(data.DownloadJob{TitleID: "ABC", Destination: t.TempDir()}))

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("transfer never started")
	}

	closed := make(chan struct{})
	go func() {
		downloader.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close blocked on an in-flight transfer")
	}
}
