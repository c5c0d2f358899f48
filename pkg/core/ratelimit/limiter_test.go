package ratelimit

import (
	"testing"
	"time"
)

func TestMemoryStore_WindowCounting(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return base }

	for i := 0; i < 3; i++ {
		result := store.Check("client-a", 3, time.Minute)
		if !result.Allowed {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
		if result.Remaining != 3-(i+1) {
			t.Errorf("request %d remaining = %d, want %d", i+1, result.Remaining, 3-(i+1))
		}
	}

	result := store.Check("client-a", 3, time.Minute)
	if result.Allowed {
		t.Error("fourth request allowed, want denied")
	}
	if result.Remaining != 0 {
		t.Errorf("denied remaining = %d, want 0", result.Remaining)
	}
	if want := base.Add(time.Minute); !result.ResetTime.Equal(want) {
		t.Errorf("reset time = %v, want %v", result.ResetTime, want)
	}
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 2; i++ {
		store.Check("client-a", 2, time.Minute)
	}
	if store.Check("client-a", 2, time.Minute).Allowed {
		t.Error("client-a over limit but still allowed")
	}
	if !store.Check("client-b", 2, time.Minute).Allowed {
		t.Error("client-b denied despite a fresh counter")
	}
}

func TestMemoryStore_WindowReset(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	store := NewMemoryStore()
	store.now = func() time.Time { return current }

	for i := 0; i < 2; i++ {
		store.Check("client-a", 2, time.Minute)
	}
	if store.Check("client-a", 2, time.Minute).Allowed {
		t.Fatal("expected denial before the window elapsed")
	}

	current = base.Add(time.Minute + time.Second)
	result := store.Check("client-a", 2, time.Minute)
	if !result.Allowed {
		t.Error("request after window elapsed denied, want allowed")
	}
	if result.Remaining != 1 {
		t.Errorf("remaining after reset = %d, want 1", result.Remaining)
	}
	if want := current.Add(time.Minute); !result.ResetTime.Equal(want) {
		t.Errorf("reset time = %v, want %v", result.ResetTime, want)
	}
}
