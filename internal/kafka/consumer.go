package kafka

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/parcel_product/internal/ports"
	"github.com/Gunvolt24/parcel_product/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageHandler — проверка запроса из сообщения.
// Ошибка с domain.ErrInvalidRequest — запрос отклонён, прочие — временный сбой.
type messageHandler interface {
	HandleMessage(ctx context.Context, raw []byte) error
}

// resultWriter — часть kafka.Writer для топика результатов.
type resultWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer — обёртка над kafka.Reader + зависимостями (usecase, logger).
type Consumer struct {
	reader         reader
	handler        messageHandler
	results        resultWriter // nil — результаты не публикуются
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer — конструктор. ReaderConfig() настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, handler messageHandler, log ports.Logger) *Consumer {
	c := &Consumer{
		reader:         kafka.NewReader(cfg.ReaderConfig()),
		handler:        handler,
		log:            log,
		processTimeout: orDefault(cfg.ProcessTimeout, 5*time.Second),
		retryInitial:   orDefault(cfg.RetryInitial, time.Second),
		retryMax:       orDefault(cfg.RetryMax, 30*time.Second),
		// jitterRand — источник случайности, чтобы рассинхронизировать экспоненциальный backoff.
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if cfg.ResultsTopic != "" {
		c.results = newResultWriter(cfg.Brokers, cfg.ResultsTopic)
	}
	return c
}

// Run — основной цикл:
// 1) читаем сообщение без авто-коммита;
// 2) принятый запрос → публикуем итог и CommitMessages;
// 3) отклонённый запрос или мусор → лог, итог и CommitMessages (повторять бессмысленно);
// 4) сбой справочника → повторяем то же сообщение с backoff, пока не будет итога или отмены.
// Reader группы читает дальше без коммита, а коммит следующего оффсета покрыл бы пропущенный,
// поэтому к следующему сообщению переходим только после итога по текущему.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	// Экспоненциальный backoff на ошибках FetchMessage с equal-jitter
	retry := c.retryInitial

	for {
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// временная ошибка брокера/сети — ждём и повторяем
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		retry = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if !c.processUntilSettled(ctx, rc.Topic, &msg) {
			// остановка во время повторов: оффсет не закоммичен, сообщение прочитает следующий запуск
			return ctx.Err()
		}
		c.commitSafely(ctx, &msg)
	}
}

// Close — закрывает reader и публикатор результатов. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		errs := []error{c.reader.Close()}
		if c.results != nil {
			errs = append(errs, c.results.Close())
		}
		retErr = errors.Join(errs...)
	})
	return retErr
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
