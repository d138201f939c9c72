// Package backend polls local status sources (clock, working directory,
// host load) and publishes snapshots for the UI to apply to the status bar.
package backend

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindClock Kind = iota
	KindWorkdir
	KindSystem
)

// ClockSnapshot carries the current wall-clock time.
type ClockSnapshot struct {
	Now time.Time
}

// WorkdirSnapshot carries the process working directory.
type WorkdirSnapshot struct {
	Path string
}

// SystemSnapshot carries host identity and load.
type SystemSnapshot struct {
	Hostname string
	Load     string
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Watcher polls each status source at its own interval and publishes events.
type Watcher struct {
	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher with all pollers running.
func NewWatcher() *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 16),
	}

	w.startPoller(KindClock, time.Second, fetchClock)
	w.startPoller(KindWorkdir, 2*time.Second, fetchWorkdir)
	w.startPoller(KindSystem, 5*time.Second, fetchSystem)

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events
// channel is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startPoller(kind Kind, interval time.Duration, fetch func() (interface{}, error)) {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(kind, interval, func(context.Context) (interface{}, error) {
		throttle.wait()
		return fetch()
	})
}

func (w *Watcher) poll(kind Kind, interval time.Duration, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}

func fetchClock() (interface{}, error) {
	return ClockSnapshot{Now: time.Now()}, nil
}

func fetchWorkdir() (interface{}, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if home, herr := os.UserHomeDir(); herr == nil && home != "" {
		if rel, ok := strings.CutPrefix(cwd, home); ok && (rel == "" || strings.HasPrefix(rel, "/")) {
			cwd = "~" + rel
		}
	}
	return WorkdirSnapshot{Path: cwd}, nil
}

func fetchSystem() (interface{}, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, err
	}
	snapshot := SystemSnapshot{Hostname: host}
	// Load average is Linux-specific; absence is not an error.
	if data, err := os.ReadFile("/proc/loadavg"); err == nil {
		if fields := strings.Fields(string(data)); len(fields) > 0 {
			snapshot.Load = fields[0]
		}
	}
	return snapshot, nil
}
