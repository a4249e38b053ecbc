package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/kerbaras/mapleseed/pkg/data"
)

// DownloadProgress represents the progress of a queued download
type DownloadProgress struct {
	TitleID     string
	ContentType string
	Bytes       int64
	Path        string
	Status      string // "queued", "downloading", "complete", "error"
	Error       error
}

const queueSize = 64

// ContentTypes are the kinds of title content the queue can fetch.
var ContentTypes = []string{"game", "update", "dlc"}

// Downloader is the download queue: a fixed pool of workers draining a job
// channel.
type Downloader struct {
	client       *http.Client
	baseURL      string
	rateLimiter  *time.Ticker
	jobs         chan data.DownloadJob
	progressChan chan DownloadProgress

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewDownloader starts workers that fetch content from baseURL. A zero
// timeout leaves transfers bounded only by Close.
func NewDownloader(baseURL string, workers int, timeout time.Duration) *Downloader {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Downloader{
		client:       &http.Client{Timeout: timeout},
		ctx:          ctx,
		cancel:       cancel,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		rateLimiter:  time.NewTicker(500 * time.Millisecond), // 2 req/sec
		jobs:         make(chan data.DownloadJob, queueSize),
		progressChan: make(chan DownloadProgress, 100),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// GetProgressChannel returns the channel for receiving download progress updates
func (d *Downloader) GetProgressChannel() <-chan DownloadProgress {
	return d.progressChan
}

// AddToQueue normalizes the job's title id and enqueues it without blocking.
func (d *Downloader) AddToQueue(job data.DownloadJob) error {
	job.TitleID = data.NormalizeID(job.TitleID)
	if job.ContentType == "" {
		job.ContentType = "game"
	}
	if err := validateJob(job); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errors.New(errors.CodeUnavailable, "download queue is closed")
	}

	select {
	case d.jobs <- job:
	default:
		return errors.Newf(errors.CodeRateLimit, "download queue is full (%d jobs)", queueSize)
	}

	d.sendProgress(DownloadProgress{TitleID: job.TitleID, ContentType: job.ContentType, Status: "queued"})
	return nil
}

// validateJob keeps the title id and content type usable as single path
// elements under the destination.
func validateJob(job data.DownloadJob) error {
	if job.TitleID == "" || job.TitleID == "." || job.TitleID == ".." || strings.ContainsAny(job.TitleID, `/\`) {
		return errors.Newf(errors.CodeInvalidInput, "invalid title id %q", job.TitleID)
	}
	if !slices.Contains(ContentTypes, job.ContentType) {
		return errors.Newf(errors.CodeInvalidInput, "unknown content type %q (want one of %s)",
			job.ContentType, strings.Join(ContentTypes, ", "))
	}
	return nil
}

// targetPath is <destination>/<title id>/<content type>, refusing anything
// that resolves outside destination.
func targetPath(job data.DownloadJob) (string, error) {
	if err := validateJob(job); err != nil {
		return "", err
	}
	dest := filepath.Clean(job.Destination)
	path := filepath.Join(dest, job.TitleID, job.ContentType)
	rel, err := filepath.Rel(dest, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.CodeInvalidInput, "%s escapes %s", path, dest)
	}
	return path, nil
}

func (d *Downloader) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		path, n, err := d.DownloadTitle(job)
		if err != nil {
			d.sendProgress(DownloadProgress{
				TitleID:     job.TitleID,
				ContentType: job.ContentType,
				Status:      "error",
				Error:       err,
			})
			continue
		}
		d.sendProgress(DownloadProgress{
			TitleID:     job.TitleID,
			ContentType: job.ContentType,
			Bytes:       n,
			Path:        path,
			Status:      "complete",
		})
	}
}

// DownloadTitle fetches one job's content into <destination>/<title id>/.
func (d *Downloader) DownloadTitle(job data.DownloadJob) (string, int64, error) {
	path, err := targetPath(job)
	if err != nil {
		return "", 0, err
	}

	// Rate limiting
	select {
	case <-d.rateLimiter.C:
	case <-d.ctx.Done():
		return "", 0, d.ctx.Err()
	}

	d.sendProgress(DownloadProgress{TitleID: job.TitleID, ContentType: job.ContentType, Status: "downloading"})

	target := fmt.Sprintf("%s/%s/%s", d.baseURL, job.TitleID, job.ContentType)
	if job.Version != "" {
		target += "?" + url.Values{"version": {job.Version}}.Encode()
	}
	req, err := http.NewRequestWithContext(d.ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to build request for %s: %w", job.TitleID, err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("failed to fetch %s: %w", job.TitleID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("bad status: %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create title folder: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, n, nil
}

// sendProgress sends a progress update (non-blocking)
func (d *Downloader) sendProgress(progress DownloadProgress) {
	select {
	case d.progressChan <- progress:
	default:
		// Channel full, skip this update
	}
}

// Close stops accepting jobs, aborts in-flight transfers, waits for the
// workers and closes the progress channel. Jobs still queued fail with the
// cancellation error.
func (d *Downloader) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.cancel()
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
	d.rateLimiter.Stop()
	close(d.progressChan)
}
