package collector

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestCollector(window time.Duration) *Collector {
	nopLogger := zerolog.Nop()
	return New(window, &nopLogger)
}

type capture struct {
	mu      sync.Mutex
	fileIDs []string
	grouped bool
	calls   int
	done    chan struct{}
}

func newCapture() *capture {
	return &capture{done: make(chan struct{}, 4)}
}

func (c *capture) flush(fileIDs []string, grouped bool) {
	c.mu.Lock()
	c.fileIDs = fileIDs
	c.grouped = grouped
	c.calls++
	c.mu.Unlock()
	c.done <- struct{}{}
}

func (c *capture) wait(t *testing.T) {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(2 * time.Second):
		t.Fatal("flush never fired")
	}
}

func TestCollector_SinglePhotoFlushesImmediately(t *testing.T) {
	c := newTestCollector(time.Hour) // window must not matter
	cap := newCapture()

	c.Submit(100, "photo_1", "", cap.flush)

	cap.wait(t)
	if cap.calls != 1 {
		t.Fatalf("calls = %d, want 1", cap.calls)
	}
	if cap.grouped {
		t.Errorf("single photo reported as grouped")
	}
	if len(cap.fileIDs) != 1 || cap.fileIDs[0] != "photo_1" {
		t.Errorf("fileIDs = %v", cap.fileIDs)
	}
}

func TestCollector_AlbumBatchesInOrder(t *testing.T) {
	c := newTestCollector(30 * time.Millisecond)
	cap := newCapture()

	c.Submit(100, "photo_1", "album_1", cap.flush)
	c.Submit(100, "photo_2", "album_1", cap.flush)
	c.Submit(100, "photo_3", "album_1", cap.flush)

	cap.wait(t)
	cap.mu.Lock()
	defer cap.mu.Unlock()
	if cap.calls != 1 {
		t.Fatalf("calls = %d, want 1", cap.calls)
	}
	if !cap.grouped {
		t.Errorf("album not reported as grouped")
	}
	want := []string{"photo_1", "photo_2", "photo_3"}
	if len(cap.fileIDs) != len(want) {
		t.Fatalf("fileIDs = %v, want %v", cap.fileIDs, want)
	}
	for i := range want {
		if cap.fileIDs[i] != want[i] {
			t.Fatalf("fileIDs = %v, want %v (order lost)", cap.fileIDs, want)
		}
	}
}

func TestCollector_SeparateChatsDoNotMix(t *testing.T) {
	c := newTestCollector(30 * time.Millisecond)
	cap1 := newCapture()
	cap2 := newCapture()

	// Same media group id from two chats must stay separate.
	c.Submit(100, "a", "album_1", cap1.flush)
	c.Submit(200, "b", "album_1", cap2.flush)

	cap1.wait(t)
	cap2.wait(t)
	if len(cap1.fileIDs) != 1 || cap1.fileIDs[0] != "a" {
		t.Errorf("chat 100 batch = %v", cap1.fileIDs)
	}
	if len(cap2.fileIDs) != 1 || cap2.fileIDs[0] != "b" {
		t.Errorf("chat 200 batch = %v", cap2.fileIDs)
	}
}

func TestCollector_DiscardCancelsPendingBatch(t *testing.T) {
	c := newTestCollector(30 * time.Millisecond)
	cap := newCapture()

	c.Submit(100, "photo_1", "album_1", cap.flush)
	c.Discard(100)

	select {
	case <-cap.done:
		t.Fatal("discarded batch still flushed")
	case <-time.After(100 * time.Millisecond):
	}
}
