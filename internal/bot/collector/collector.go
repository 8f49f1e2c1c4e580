// Package collector batches Telegram media-group photos. Telegram delivers
// an album as separate photo messages sharing a media_group_id with no
// end-of-album marker, so the collector debounces: each photo restarts a
// short timer and the batch flushes when the timer finally fires.
package collector

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultWindow is the debounce window between album photos.
const DefaultWindow = time.Second

// FlushFunc receives the collected file ids in arrival order. grouped is
// false for a single photo sent outside an album.
type FlushFunc func(fileIDs []string, grouped bool)

type batch struct {
	fileIDs []string
	timer   *time.Timer
	flush   FlushFunc
}

// Collector accumulates album photos per (chat, media group) pair.
type Collector struct {
	mu      sync.Mutex
	window  time.Duration
	batches map[string]*batch
	log     zerolog.Logger
}

// New creates a collector. A window of zero means DefaultWindow.
func New(window time.Duration, baseLogger *zerolog.Logger) *Collector {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Collector{
		window:  window,
		batches: make(map[string]*batch),
		log:     baseLogger.With().Str("component", "media_collector").Logger(),
	}
}

// Submit adds a photo. A photo without a media group id flushes
// immediately; an album photo joins its batch and restarts the debounce
// timer. flush runs on a timer goroutine for albums and synchronously for
// single photos.
func (c *Collector) Submit(chatID int64, fileID, mediaGroupID string, flush FlushFunc) {
	if mediaGroupID == "" {
		flush([]string{fileID}, false)
		return
	}

	key := batchKey(chatID, mediaGroupID)

	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.batches[key]
	if !ok {
		b = &batch{flush: flush}
		c.batches[key] = b
	}
	b.fileIDs = append(b.fileIDs, fileID)
	b.flush = flush

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(c.window, func() {
		c.fire(key)
	})
}

func (c *Collector) fire(key string) {
	c.mu.Lock()
	b, ok := c.batches[key]
	if ok {
		delete(c.batches, key)
	}
	c.mu.Unlock()

	if !ok {
		return
	}
	c.log.Debug().Str("batch", key).Int("photos", len(b.fileIDs)).Msg("Flushing media group")
	b.flush(b.fileIDs, true)
}

// Discard drops any pending batches for the chat, for flow cancellation.
func (c *Collector) Discard(chatID int64) {
	prefix := batchKey(chatID, "")

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, b := range c.batches {
		if strings.HasPrefix(key, prefix) {
			if b.timer != nil {
				b.timer.Stop()
			}
			delete(c.batches, key)
		}
	}
}

func batchKey(chatID int64, mediaGroupID string) string {
	return strconv.FormatInt(chatID, 10) + "/" + mediaGroupID
}
