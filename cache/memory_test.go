package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := s.Set(ctx, "k", payload{Name: "x", Count: 3}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	hit, err := s.Get(ctx, "k", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.Name != "x" || got.Count != 3 {
		t.Errorf("got %+v, want {x 3}", got)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if hit, _ := s.Get(ctx, "k", &got); hit {
		t.Error("expected miss after delete")
	}
}

func TestMemoryStoreMiss(t *testing.T) {
	s := NewMemoryStore()
	var out int
	hit, err := s.Get(context.Background(), "absent", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Error("expected miss for absent key")
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.Now = func() time.Time { return now }

	if err := s.Set(ctx, "k", 42, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out int
	if hit, _ := s.Get(ctx, "k", &out); !hit {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(time.Minute + time.Second)
	if hit, _ := s.Get(ctx, "k", &out); hit {
		t.Error("expected miss after expiry")
	}

	// ttl <= 0 means no expiry.
	if err := s.Set(ctx, "p", 1, 0); err != nil {
		t.Fatalf("set persistent: %v", err)
	}
	now = now.Add(240 * time.Hour)
	if hit, _ := s.Get(ctx, "p", &out); !hit {
		t.Error("expected persistent entry to survive")
	}
}
