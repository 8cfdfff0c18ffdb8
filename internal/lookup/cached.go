package lookup

import (
	"context"
	"time"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/internal/ports"
)

var _ ports.ProductLookup = (*Cached)(nil)

// recentSource — источник последних записей для прогрева кэша.
type recentSource interface {
	LastN(ctx context.Context, n int) ([]domain.ProductRecord, error)
}

// Cached — справочник с кэшем найденных записей перед хранилищем.
// Отсутствие записи не кэшируется.
type Cached struct {
	next  ports.ProductLookup
	cache ports.ProductCache
	log   ports.Logger
}

func NewCached(next ports.ProductLookup, cache ports.ProductCache, log ports.Logger) *Cached {
	return &Cached{next: next, cache: cache, log: log}
}

func (c *Cached) Load(ctx context.Context, code float64) (domain.LookupResult, error) {
	if record, found := c.cache.Get(ctx, code); found {
		return domain.Found(record), nil
	}

	res, err := c.next.Load(ctx, code)
	if err != nil {
		return domain.LookupResult{}, err
	}
	if record, found := res.Record(); found {
		if setErr := c.cache.Set(ctx, record); setErr != nil {
			c.log.Warnf(ctx, "cache.Set failed code=%v err=%v", code, setErr)
		}
	}
	return res, nil
}

// WarmUp — прогрев кэша последними n записями справочника.
// Если n <= 0, прогрев не выполняется (но это не ошибка).
func (c *Cached) WarmUp(ctx context.Context, src recentSource, n int) error {
	if n <= 0 {
		c.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	list, err := src.LastN(ctx, n)
	if err != nil {
		c.log.Errorf(ctx, "repo.LastN failed n=%d err=%v", n, err)
		return err
	}
	if warmUpErr := c.cache.WarmUp(ctx, list); warmUpErr != nil {
		c.log.Warnf(ctx, "cache.WarmUp failed err=%v", warmUpErr)
	}
	c.log.Infof(ctx, "cache warmed with %d products in %s", len(list), time.Since(start))
	return nil
}
