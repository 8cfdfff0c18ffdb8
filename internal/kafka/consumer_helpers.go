package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// handleMessage проверяет одно сообщение и определяет, нужно ли коммитить оффсет.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.handler.HandleMessage(ctxTimeout, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
	case errors.Is(err, domain.ErrInvalidRequest):
		// отклонённый запрос — повтор даст тот же итог, поэтому коммитим
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "parcel rejected offset=%d: %v (skipped)", msg.Offset, err)
	default:
		// сбой (справочник/таймаут): итога нет, коммитить нельзя
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "process failed offset=%d: %v (will retry)", msg.Offset, err)
		return false
	}

	c.publishSafely(ctx, msg, ResultFromError(err))
	return true
}

// processUntilSettled повторяет обработку сообщения, пока не получен итог (принят или отклонён).
// false — контекст отменён раньше итога.
func (c *Consumer) processUntilSettled(ctx context.Context, topic string, msg *kafka.Message) bool {
	wait := c.retryInitial
	for {
		if c.handleMessage(ctx, topic, msg) {
			return true
		}
		if !c.sleepWithBackoff(ctx, c.withJitterEqual(wait)) {
			return false
		}
		wait = c.nextBackoff(wait)
	}
}

// publishSafely отправляет итог в топик результатов; ошибка только логируется.
func (c *Consumer) publishSafely(ctx context.Context, msg *kafka.Message, res Result) {
	if c.results == nil {
		return
	}
	if err := c.results.WriteMessages(ctx, resultMessage(msg.Key, res)); err != nil {
		c.log.Warnf(ctx, "publish result failed offset=%d: %v", msg.Offset, err)
	}
}

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайная.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
