package lookup

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/internal/ports"
	"github.com/Gunvolt24/parcel_product/pkg/metrics"
)

var _ ports.ProductLookup = (*Retrying)(nil)

// RetryPolicy — параметры повторов при сбоях справочника.
type RetryPolicy struct {
	Attempts int           // всего попыток, включая первую
	Initial  time.Duration // первая пауза
	Max      time.Duration // верхняя граница паузы
}

// Retrying — повторяет Load при сбоях хранилища с экспоненциальной паузой и equal-jitter.
// "Не найдено" — не сбой и не повторяется; отмена контекста прекращает повторы.
type Retrying struct {
	next   ports.ProductLookup
	log    ports.Logger
	policy RetryPolicy

	mu         sync.Mutex
	jitterRand *rand.Rand
}

func NewRetrying(next ports.ProductLookup, policy RetryPolicy, log ports.Logger) *Retrying {
	if policy.Attempts <= 0 {
		policy.Attempts = 1
	}
	if policy.Initial <= 0 {
		policy.Initial = 50 * time.Millisecond
	}
	if policy.Max <= 0 {
		policy.Max = time.Second
	}
	return &Retrying{
		next:       next,
		log:        log,
		policy:     policy,
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *Retrying) Load(ctx context.Context, code float64) (domain.LookupResult, error) {
	wait := r.policy.Initial

	var lastErr error
	for attempt := 1; attempt <= r.policy.Attempts; attempt++ {
		res, err := r.next.Load(ctx, code)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.LookupResult{}, err
		}
		if attempt == r.policy.Attempts {
			break
		}

		sleep := r.withJitterEqual(wait)
		r.log.Warnf(ctx, "product lookup failed code=%v attempt=%d: %v (will retry in %s)", code, attempt, err, sleep)
		metrics.LookupRetries.Inc()
		if !sleepCtx(ctx, sleep) {
			return domain.LookupResult{}, ctx.Err()
		}
		wait = r.nextBackoff(wait)
	}
	return domain.LookupResult{}, lastErr
}

// nextBackoff — следующая пауза с учётом Max.
func (r *Retrying) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > r.policy.Max {
		return r.policy.Max
	}
	return current
}

// withJitterEqual — половина паузы фиксирована, вторая половина случайна.
func (r *Retrying) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	r.mu.Lock()
	jitter := time.Duration(r.jitterRand.Int63n(int64(d-half) + 1))
	r.mu.Unlock()
	return half + jitter
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
