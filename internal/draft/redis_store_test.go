package draft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreGetMissing(t *testing.T) {
	store, _ := setupRedisStore(t, 0)
	_, err := store.Get(context.Background(), "42")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRedisStorePutGetDelete(t *testing.T) {
	store, _ := setupRedisStore(t, 0)
	ctx := context.Background()

	d := New()
	d, _ = d.SetField("name", "Stored")
	d, _ = d.SetPartnerField(0, "name", "Supplier")
	if err := store.Put(ctx, "42", d); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "42")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Stored" || got.Partners[0].Name != "Supplier" {
		t.Errorf("Expected stored draft back, got %+v", got)
	}
	if got.Partners[0].Key != d.Partners[0].Key {
		t.Error("Expected rendering keys to survive the round trip")
	}

	if err := store.Delete(ctx, "42"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "42"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

// TestRedisStoreTTL verifies drafts expire after the configured TTL and that
// a Put refreshes the expiry.
func TestRedisStoreTTL(t *testing.T) {
	store, mr := setupRedisStore(t, time.Hour)
	ctx := context.Background()

	if err := store.Put(ctx, "42", New()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	mr.FastForward(30 * time.Minute)
	if _, err := store.Get(ctx, "42"); err != nil {
		t.Fatalf("Expected draft alive before TTL, got %v", err)
	}

	// A write resets the clock.
	if err := store.Put(ctx, "42", New()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	mr.FastForward(45 * time.Minute)
	if _, err := store.Get(ctx, "42"); err != nil {
		t.Fatalf("Expected draft alive after refresh, got %v", err)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := store.Get(ctx, "42"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected draft expired, got %v", err)
	}
}

func TestRedisStoreKeyIsolation(t *testing.T) {
	store, _ := setupRedisStore(t, 0)
	ctx := context.Background()

	a := New()
	a, _ = a.SetField("name", "A")
	b := New()
	b, _ = b.SetField("name", "B")

	if err := store.Put(ctx, "1", a); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "2", b); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "1")
	if err != nil || got.Name != "A" {
		t.Errorf("Expected user 1 draft, got %+v (%v)", got, err)
	}
	got, err = store.Get(ctx, "2")
	if err != nil || got.Name != "B" {
		t.Errorf("Expected user 2 draft, got %+v (%v)", got, err)
	}
}
