package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jiro4989/tkfmw/pkg/geometry"
)

func testLayer() geometry.Layer {
	return geometry.Partition(10, 10, 40, 40, 100, 100)
}

func TestNew(t *testing.T) {
	sess := New("photo.png", "abc123", testLayer(), time.Hour)

	if sess.ID == "" {
		t.Error("session should get a UUID")
	}
	if sess.Image != "photo.png" || sess.ImageHash != "abc123" {
		t.Errorf("unexpected session fields: %+v", sess)
	}
	if sess.Focus() != (geometry.Rect{X: 10, Y: 10, Width: 40, Height: 40}) {
		t.Errorf("Focus() = %+v", sess.Focus())
	}
	if sess.IsExpired() {
		t.Error("fresh session should not be expired")
	}

	other := New("photo.png", "abc123", testLayer(), time.Hour)
	if other.ID == sess.ID {
		t.Error("sessions should get distinct IDs")
	}
}

func TestNewDefaultTTL(t *testing.T) {
	sess := New("photo.png", "abc", testLayer(), 0)
	want := sess.CreatedAt.Add(DefaultTTL)
	if !sess.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", sess.ExpiresAt, want)
	}
}

// storeTest exercises the Store contract shared by all backends.
func storeTest(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	// Missing session
	if _, err := store.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}

	// Round trip
	sess := New("photo.png", "hash1", testLayer(), time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != sess.ID || got.Image != sess.Image || got.Layer != sess.Layer {
		t.Errorf("Get = %+v, want %+v", got, sess)
	}

	// Expired session
	old := New("old.png", "hash2", testLayer(), time.Hour)
	old.ExpiresAt = time.Now().Add(-time.Minute)
	if err := store.Set(ctx, old); err != nil {
		t.Fatalf("Set expired: %v", err)
	}
	if _, err := store.Get(ctx, old.ID); !errors.Is(err, ErrExpired) {
		t.Errorf("Get expired = %v, want ErrExpired", err)
	}

	// Delete
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}

	// Deleting a missing session is fine
	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close(context.Background())
	storeTest(t, store)
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer store.Close(context.Background())
	storeTest(t, store)
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	live := New("live.png", "h1", testLayer(), time.Hour)
	dead := New("dead.png", "h2", testLayer(), time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Minute)

	_ = store.Set(ctx, live)
	_ = store.Set(ctx, dead)

	removed, err := store.Cleanup(ctx)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if removed != 1 {
		t.Errorf("Cleanup removed %d, want 1", removed)
	}
	if _, err := store.Get(ctx, live.ID); err != nil {
		t.Errorf("live session should survive cleanup: %v", err)
	}
}

func TestFileStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	live := New("live.png", "h1", testLayer(), time.Hour)
	dead := New("dead.png", "h2", testLayer(), time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Minute)

	_ = store.Set(ctx, live)
	_ = store.Set(ctx, dead)

	removed, err := store.Cleanup(ctx)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if removed != 1 {
		t.Errorf("Cleanup removed %d, want 1", removed)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sess := New("photo.png", "h", testLayer(), time.Hour)
	_ = store.Set(ctx, sess)

	got, _ := store.Get(ctx, sess.ID)
	got.Image = "mutated.png"

	again, _ := store.Get(ctx, sess.ID)
	if again.Image != "photo.png" {
		t.Error("mutating a returned session should not affect the store")
	}
}
