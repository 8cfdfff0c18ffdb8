package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/parcel_product/internal/cache/memory"
	"github.com/Gunvolt24/parcel_product/internal/domain"
)

func rec(code float64) domain.ProductRecord {
	return domain.ProductRecord{Code: code, Name: "p", Value: code * 10}
}

func TestLRU_SetGet(t *testing.T) {
	ctx := context.Background()
	c := memory.NewLRUCacheTTL(2, time.Minute)

	if err := c.Set(ctx, rec(1)); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, ok := c.Get(ctx, 1)
	if !ok || got != rec(1) {
		t.Fatalf("expected hit with %+v, got ok=%v rec=%+v", rec(1), ok, got)
	}
	if _, ok := c.Get(ctx, 2); ok {
		t.Fatalf("expected miss for unknown code")
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := memory.NewLRUCacheTTL(2, 0)

	_ = c.Set(ctx, rec(1))
	_ = c.Set(ctx, rec(2))
	_, _ = c.Get(ctx, 1) // 1 становится самым свежим
	_ = c.Set(ctx, rec(3))

	if _, ok := c.Get(ctx, 2); ok {
		t.Fatalf("code 2 must be evicted")
	}
	if _, ok := c.Get(ctx, 1); !ok {
		t.Fatalf("code 1 must stay")
	}
	if c.Len() != 2 {
		t.Fatalf("want len 2, got %d", c.Len())
	}
}

func TestLRU_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	c := memory.NewLRUCacheTTL(10, time.Minute)
	c.SetClock(func() time.Time { return now })

	_ = c.Set(ctx, rec(5))
	now = now.Add(30 * time.Second)
	if _, ok := c.Get(ctx, 5); !ok {
		t.Fatalf("record must be alive before TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(ctx, 5); ok {
		t.Fatalf("record must expire after TTL")
	}
	if c.Len() != 0 {
		t.Fatalf("expired record must be removed, len=%d", c.Len())
	}
}

func TestLRU_SetIgnoresNonPositiveCode(t *testing.T) {
	ctx := context.Background()
	c := memory.NewLRUCacheTTL(2, time.Minute)

	_ = c.Set(ctx, domain.ProductRecord{Code: 0, Name: "zero"})
	if c.Len() != 0 {
		t.Fatalf("record with code 0 must be ignored")
	}
}

func TestLRU_WarmUp_StopsOnCanceledContext(t *testing.T) {
	c := memory.NewLRUCacheTTL(10, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.WarmUp(ctx, []domain.ProductRecord{rec(1), rec(2)}); err == nil {
		t.Fatalf("expected context error")
	}
	if c.Len() != 0 {
		t.Fatalf("nothing must be loaded after cancel, len=%d", c.Len())
	}

	if err := c.WarmUp(context.Background(), []domain.ProductRecord{rec(1), rec(2)}); err != nil {
		t.Fatalf("WarmUp error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("want 2 records, got %d", c.Len())
	}
}
