package metrics

import (
	"sync"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ValidationOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_validation_outcomes_total",
			Help: "Number of parcel validations by outcome and rejection reason",
		},
		[]string{"outcome", "reason"}, // accepted|rejected|faulted; missing_field|invalid_field|...
	)
	LookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "product_lookup_duration_seconds",
			Help:    "Latency of product lookups",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"}, // found|not_found|error
	)
	LookupRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "product_lookup_retries_total",
			Help: "Number of retried product lookups",
		},
	)
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в default registry; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ValidationOutcomes, LookupDuration, LookupRetries,
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			CacheOps, CacheSize,
		)
	})
}

// ObserveOutcome — учёт итога проверки.
func ObserveOutcome(o domain.Outcome) {
	kind, _ := o.Reason()
	ValidationOutcomes.WithLabelValues(o.Kind.String(), string(kind)).Inc()
}
