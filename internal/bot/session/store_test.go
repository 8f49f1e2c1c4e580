package session

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"uybor/internal/core/domain"
)

func newTestStore(ttl time.Duration) *Store {
	nopLogger := zerolog.Nop()
	return NewStore(ttl, &nopLogger)
}

func TestStore_GetCreatesEmptySession(t *testing.T) {
	store := newTestStore(0)

	sess := store.Get(100)
	if sess.Step != domain.StepNone {
		t.Fatalf("New session step = %s, want none", sess.Step)
	}
	if sess.Draft != nil {
		t.Fatalf("New session has a draft")
	}
}

func TestStore_PutGetRoundtrip(t *testing.T) {
	store := newTestStore(0)

	sess := store.Get(100)
	sess.Step = domain.StepPrice
	sess.Draft = &domain.ListingDraft{PropertyType: domain.PropertyApartment}
	store.Put(100, sess)

	got := store.Get(100)
	if got.Step != domain.StepPrice {
		t.Errorf("Step = %s, want price", got.Step)
	}
	if got.Draft == nil || got.Draft.PropertyType != domain.PropertyApartment {
		t.Errorf("Draft not preserved")
	}

	// A different chat gets its own session.
	other := store.Get(200)
	if other.Step != domain.StepNone {
		t.Errorf("Sessions leaked across chats")
	}
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(0)

	sess := store.Get(100)
	sess.Step = domain.StepPhotos
	store.Put(100, sess)
	store.Clear(100)

	if got := store.Get(100); got.Step != domain.StepNone {
		t.Fatalf("Step after clear = %s, want none", got.Step)
	}
}

func TestStore_ExpiredSessionResets(t *testing.T) {
	store := newTestStore(time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }

	sess := store.Get(100)
	sess.Step = domain.StepArea
	store.Put(100, sess)

	current = current.Add(2 * time.Minute)

	if got := store.Get(100); got.Step != domain.StepNone {
		t.Fatalf("Expired session survived, step = %s", got.Step)
	}
}

func TestStore_SweepRemovesOnlyExpired(t *testing.T) {
	store := newTestStore(time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }

	old := store.Get(100)
	old.Step = domain.StepPhotos
	store.Put(100, old)

	current = current.Add(2 * time.Minute)

	fresh := store.Get(200)
	fresh.Step = domain.StepPrice
	store.Put(200, fresh)

	store.sweep()

	store.mu.Lock()
	_, hasOld := store.sessions[100]
	_, hasFresh := store.sessions[200]
	store.mu.Unlock()

	if hasOld {
		t.Errorf("Expired session not swept")
	}
	if !hasFresh {
		t.Errorf("Fresh session swept")
	}
}
