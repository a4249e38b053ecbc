package services

import (
	"github.com/jmgilman/go/errors"
	"github.com/kerbaras/mapleseed/pkg/data"
)

// Queue is the download queue collaborator. It owns id normalization.
type Queue interface {
	AddToQueue(job data.DownloadJob) error
}

// DownloadHandoff forwards download jobs to the queue. The title id is
// passed through as given.
type DownloadHandoff struct {
	queue Queue
}

func NewDownloadHandoff(queue Queue) *DownloadHandoff {
	return &DownloadHandoff{queue: queue}
}

func (h *DownloadHandoff) Submit(job data.DownloadJob) error {
	if job.TitleID == "" {
		return errors.New(errors.CodeInvalidInput, "download job needs a title id")
	}
	if job.Destination == "" {
		return errors.New(errors.CodeInvalidInput, "download job needs a destination")
	}
	return h.queue.AddToQueue(job)
}

func (h *DownloadHandoff) SubmitAsync(job data.DownloadJob) <-chan error {
	out := make(chan error, 1)
	go func() {
		out <- h.Submit(job)
	}()
	return out
}
