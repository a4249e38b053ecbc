package services

import (
	"context"
	"sync"
	"time"

	"github.com/jmgilman/go/errors"
)

// Component names a sub-system the barrier waits for.
type Component string

const (
	ComponentLibrary      Component = "library"
	ComponentGraphicPacks Component = "graphicpacks"
)

const (
	DefaultPollInterval = 250 * time.Millisecond
	DefaultReadyTimeout = 30 * time.Second
)

// ReadinessBarrier polls the set of loaded components and signals ready
// once every required component has reported. It fires at most once; a
// timeout or cancellation ends it without firing.
type ReadinessBarrier struct {
	required []Component
	interval time.Duration
	timeout  time.Duration

	mu        sync.Mutex
	loaded    map[Component]struct{}
	callbacks []func([]Component)
	ready     bool

	done   chan struct{}
	finish sync.Once
	err    error
}

// NewReadinessBarrier waits for required. Zero durations take the defaults.
func NewReadinessBarrier(interval, timeout time.Duration, required ...Component) *ReadinessBarrier {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}
	return &ReadinessBarrier{
		required: required,
		interval: interval,
		timeout:  timeout,
		loaded:   make(map[Component]struct{}),
		done:     make(chan struct{}),
	}
}

// MarkLoaded records that c finished loading. Repeated marks are no-ops.
func (b *ReadinessBarrier) MarkLoaded(c Component) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loaded[c] = struct{}{}
}

// Count is the number of distinct required components that have reported.
func (b *ReadinessBarrier) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count()
}

// Loaded lists the required components that have reported, in required order.
func (b *ReadinessBarrier) Loaded() []Component {
	b.mu.Lock()
	defer b.mu.Unlock()
	loaded := []Component{}
	for _, c := range b.required {
		if _, ok := b.loaded[c]; ok {
			loaded = append(loaded, c)
		}
	}
	return loaded
}

func (b *ReadinessBarrier) count() int {
	n := 0
	for _, c := range b.required {
		if _, ok := b.loaded[c]; ok {
			n++
		}
	}
	return n
}

// OnReady registers fn. If the barrier already fired, fn runs immediately.
func (b *ReadinessBarrier) OnReady(fn func([]Component)) {
	b.mu.Lock()
	if !b.ready {
		b.callbacks = append(b.callbacks, fn)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	fn(b.components())
}

// Required lists the components the barrier waits for.
func (b *ReadinessBarrier) Required() []Component {
	return b.components()
}

func (b *ReadinessBarrier) components() []Component {
	return append([]Component{}, b.required...)
}

// Run polls until ready, timeout or ctx cancellation. It should be called
// once; later calls return the first outcome.
func (b *ReadinessBarrier) Run(ctx context.Context) error {
	select {
	case <-b.done:
		return b.err
	default:
	}

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	deadline := time.NewTimer(b.timeout)
	defer deadline.Stop()

	for {
		if b.tryFire() {
			return b.Err()
		}

		select {
		case <-ticker.C:
		case <-deadline.C:
			b.fail(errors.WithContext(
				errors.Newf(errors.CodeTimeout, "components not ready after %s", b.timeout),
				"loaded", b.Count(),
			))
			return b.err
		case <-ctx.Done():
			b.fail(errors.Wrap(ctx.Err(), errors.CodeUnavailable, "readiness wait cancelled"))
			return b.err
		}
	}
}

func (b *ReadinessBarrier) tryFire() bool {
	b.mu.Lock()
	if b.ready {
		b.mu.Unlock()
		return true
	}
	if b.count() < len(b.required) {
		b.mu.Unlock()
		return false
	}
	fired := false
	b.finish.Do(func() {
		b.ready = true
		fired = true
	})
	if !fired {
		// already failed
		b.mu.Unlock()
		return true
	}
	callbacks := b.callbacks
	b.callbacks = nil
	b.mu.Unlock()

	components := b.components()
	for _, fn := range callbacks {
		fn(components)
	}
	close(b.done)
	return true
}

func (b *ReadinessBarrier) fail(err error) {
	b.finish.Do(func() {
		b.err = err
		close(b.done)
	})
}

// Done is closed once the barrier is ready or has failed.
func (b *ReadinessBarrier) Done() <-chan struct{} {
	return b.done
}

// Err reports why the barrier failed, or nil.
func (b *ReadinessBarrier) Err() error {
	select {
	case <-b.done:
		return b.err
	default:
		return nil
	}
}

func (b *ReadinessBarrier) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready
}

// Wait blocks until the barrier finishes or ctx ends.
func (b *ReadinessBarrier) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return b.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
