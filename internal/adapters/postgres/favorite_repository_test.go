package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"uybor/internal/core/domain"
)

func TestFavoriteRepository_Add_Duplicate(t *testing.T) {
	nopLogger := zerolog.Nop()
	users := NewUserRepository(testDB, &nopLogger)
	listings := NewListingRepository(testDB, &nopLogger)
	repo := NewFavoriteRepository(testDB, &nopLogger)
	ctx := context.Background()

	owner, cleanupOwner := createTestUser(t, users)
	defer cleanupOwner()
	fan, cleanupFan := createTestUser(t, users)
	defer cleanupFan()
	listing, cleanup := createTestListing(t, listings, owner.ID)
	defer cleanup()

	added, err := repo.Add(ctx, fan.ID, listing.ID)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !added {
		t.Fatalf("First add reported no new row")
	}

	// Duplicate add is a no-op
	added, err = repo.Add(ctx, fan.ID, listing.ID)
	if err != nil {
		t.Fatalf("Duplicate add failed: %v", err)
	}
	if added {
		t.Fatalf("Duplicate add reported a new row")
	}

	found, err := listings.GetByID(ctx, listing.ID)
	if err != nil || found == nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.FavoritesCount != 1 {
		t.Errorf("FavoritesCount mismatch: got %d, want 1", found.FavoritesCount)
	}
}

func TestFavoriteRepository_Remove_NotFound(t *testing.T) {
	nopLogger := zerolog.Nop()
	users := NewUserRepository(testDB, &nopLogger)
	repo := NewFavoriteRepository(testDB, &nopLogger)

	fan, cleanupFan := createTestUser(t, users)
	defer cleanupFan()

	err := repo.Remove(context.Background(), fan.ID, -1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Remove of missing favorite: got %v, want ErrNotFound", err)
	}
}

func TestFavoriteRepository_ListByUser_OnlyPublic(t *testing.T) {
	nopLogger := zerolog.Nop()
	users := NewUserRepository(testDB, &nopLogger)
	listings := NewListingRepository(testDB, &nopLogger)
	repo := NewFavoriteRepository(testDB, &nopLogger)
	ctx := context.Background()

	owner, cleanupOwner := createTestUser(t, users)
	defer cleanupOwner()
	fan, cleanupFan := createTestUser(t, users)
	defer cleanupFan()

	approved, cleanup1 := createTestListing(t, listings, owner.ID)
	defer cleanup1()
	stillPending, cleanup2 := createTestListing(t, listings, owner.ID)
	defer cleanup2()

	if err := listings.Approve(ctx, approved.ID, 777, time.Now()); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if _, err := repo.Add(ctx, fan.ID, approved.ID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := repo.Add(ctx, fan.ID, stillPending.ID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	favs, err := repo.ListByUser(ctx, fan.ID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(favs) != 1 {
		t.Fatalf("ListByUser: got %d listings, want 1", len(favs))
	}
	if favs[0].ID != approved.ID {
		t.Errorf("ListByUser returned wrong listing %d", favs[0].ID)
	}
}
