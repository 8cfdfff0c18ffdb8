package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/internal/ports"
	"github.com/Gunvolt24/parcel_product/pkg/metrics"
)

// Проверка, что LRUCacheTTL удовлетворяет интерфейсу ProductCache.
var _ ports.ProductCache = (*LRUCacheTTL)(nil)

type entry struct {
	code      float64
	record    domain.ProductRecord
	expiresAt time.Time
}

// LRUCacheTTL — LRU-кэш эталонных записей с TTL; ключ — код товара.
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[float64]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[float64]*list.Element),
	}
}

func (c *LRUCacheTTL) Get(_ context.Context, code float64) (domain.ProductRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	elem, ok := c.index[code]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return domain.ProductRecord{}, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return domain.ProductRecord{}, false
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return ent.record, true
}

func (c *LRUCacheTTL) Set(_ context.Context, record domain.ProductRecord) error {
	if record.Code <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if elem, ok := c.index[record.Code]; ok {
		ent := elem.Value.(*entry)
		ent.record = record
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		code:      record.Code,
		record:    record,
		expiresAt: c.expiryFrom(now),
	})
	c.index[record.Code] = elem

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	metrics.CacheSize.Set(float64(len(c.index)))
	return nil
}

func (c *LRUCacheTTL) WarmUp(ctx context.Context, records []domain.ProductRecord) error {
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Set(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// Len — число записей (включая ещё не вычищенные истёкшие).
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
