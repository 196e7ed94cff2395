package api

import (
	"sync"
	"testing"
	"time"
)

func TestWatcherBroadcastsOnChange(t *testing.T) {
	svc := &stubService{snap: stubSnapshot()}
	w := NewWatcher(svc, time.Hour)

	ch := w.Subscribe()
	defer w.Unsubscribe(ch)

	// First tick establishes the baseline, nothing is sent.
	w.tick()
	select {
	case snap := <-ch:
		t.Fatalf("unexpected broadcast on baseline tick: %v", snap)
	default:
	}

	// Same configuration, still nothing.
	w.tick()
	select {
	case <-ch:
		t.Fatal("unexpected broadcast for unchanged configuration")
	default:
	}

	// Change the configuration underneath the watcher.
	changed := stubSnapshot()
	changed.Displays[0].Primary = false
	changed.Displays[1].Primary = true
	svc.snap = changed

	w.tick()
	select {
	case snap := <-ch:
		if snap.Displays[1].Name != "DP-1" || !snap.Displays[1].Primary {
			t.Errorf("broadcast snapshot does not reflect the change: %v", snap.Displays)
		}
	default:
		t.Fatal("no broadcast for changed configuration")
	}
}

func TestWatcherSubscriberChurnDuringBroadcast(t *testing.T) {
	svc := &stubService{snap: stubSnapshot()}
	w := NewWatcher(svc, time.Hour)

	// Baseline tick so every later tick broadcasts.
	w.tick()

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				ch := w.Subscribe()
				w.Unsubscribe(ch)
			}
		}()
	}

	// Flip the primary output back and forth so every tick fans out
	// while subscribers come and go. A close racing a send would
	// panic the broadcast.
	for i := 0; i < 200; i++ {
		next := stubSnapshot()
		next.Displays[0].Primary = i%2 == 0
		next.Displays[1].Primary = !next.Displays[0].Primary
		svc.snap = next
		w.tick()
	}

	close(done)
	wg.Wait()
}

func TestWatcherUnsubscribeClosesChannel(t *testing.T) {
	w := NewWatcher(&stubService{snap: stubSnapshot()}, time.Hour)

	ch := w.Subscribe()
	w.Unsubscribe(ch)

	if _, open := <-ch; open {
		t.Error("channel should be closed after unsubscribe")
	}

	// Unsubscribing twice is harmless.
	w.Unsubscribe(ch)
}

func TestWatcherStopClosesSubscribers(t *testing.T) {
	w := NewWatcher(&stubService{snap: stubSnapshot()}, 10*time.Millisecond)
	w.Start()

	ch := w.Subscribe()
	w.Stop()

	select {
	case _, open := <-ch:
		if open {
			// A broadcast may have been in flight; the close
			// follows it.
			if _, stillOpen := <-ch; stillOpen {
				t.Error("channel should be closed after stop")
			}
		}
	case <-time.After(time.Second):
		t.Error("channel not closed after stop")
	}
}
