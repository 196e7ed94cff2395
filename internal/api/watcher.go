package api

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dadmoscow/xrandrctl/internal/logger"
	"github.com/dadmoscow/xrandrctl/internal/randr"
)

// Watcher polls the display configuration and fans changed snapshots
// out to websocket subscribers. Polling is the only option here: xrandr
// has no change-notification channel, so the watcher re-queries on an
// interval and compares.
type Watcher struct {
	svc      Service
	interval time.Duration
	log      zerolog.Logger

	mu          sync.Mutex
	subscribers map[chan *randr.Snapshot]struct{}
	last        []randr.Display

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher polling at the given interval.
func NewWatcher(svc Service, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Watcher{
		svc:         svc,
		interval:    interval,
		log:         *logger.WithComponent("watcher"),
		subscribers: make(map[chan *randr.Snapshot]struct{}),
		stopChan:    make(chan struct{}),
	}
}

// Start begins polling in a background goroutine.
func (w *Watcher) Start() {
	go w.poll()
}

// Stop ends polling and closes all subscriber channels.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
}

// Subscribe returns a channel receiving a snapshot whenever the
// configuration changes. The channel is buffered; a slow consumer
// misses intermediate snapshots rather than blocking the watcher.
func (w *Watcher) Subscribe() chan *randr.Snapshot {
	ch := make(chan *randr.Snapshot, 1)

	w.mu.Lock()
	w.subscribers[ch] = struct{}{}
	w.mu.Unlock()

	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (w *Watcher) Unsubscribe(ch chan *randr.Snapshot) {
	w.mu.Lock()
	if _, ok := w.subscribers[ch]; ok {
		delete(w.subscribers, ch)
		close(ch)
	}
	w.mu.Unlock()
}

func (w *Watcher) poll() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			w.mu.Lock()
			for ch := range w.subscribers {
				delete(w.subscribers, ch)
				close(ch)
			}
			w.mu.Unlock()
			return
		case <-ticker.C:
			w.tick()
		}
	}
}

func (w *Watcher) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	snap, err := w.svc.Snapshot(ctx)
	cancel()
	if err != nil {
		w.log.Warn().Err(err).Msg("Poll query failed")
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	changed := w.last != nil && !reflect.DeepEqual(w.last, snap.Displays)
	w.last = snap.Displays
	if !changed {
		return
	}

	w.log.Debug().Int("outputs", len(snap.Displays)).Msg("Display configuration changed")

	// Sending while holding the lock excludes Unsubscribe's close, so
	// a subscriber leaving mid-broadcast cannot crash the poll loop.
	// The default case keeps a slow subscriber from blocking it.
	for ch := range w.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}
