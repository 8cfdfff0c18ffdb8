package kafka

import (
	"encoding/json"
	"time"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/segmentio/kafka-go"
)

// Статусы в топике результатов.
const (
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Result — итог проверки сообщения, публикуется в топик результатов.
type Result struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// ResultFromError строит Result по ошибке HandleMessage (nil или отклонение).
func ResultFromError(err error) Result {
	if err == nil {
		return Result{Status: StatusAccepted}
	}
	if ve, ok := domain.AsValidationError(err); ok {
		return Result{
			Status:  StatusRejected,
			Error:   string(ve.Kind),
			Field:   ve.FieldPath(),
			Message: ve.Error(),
		}
	}
	// отклонено до проверок (битый JSON)
	return Result{Status: StatusRejected, Error: "invalid_json", Message: "invalid json"}
}

// resultMessage — сообщение для топика результатов. Ключ исходного сообщения
// сохраняется, чтобы клиент мог сопоставить запрос и итог.
func resultMessage(key []byte, res Result) kafka.Message {
	raw, _ := json.Marshal(res) // Result состоит из строк, Marshal не падает
	return kafka.Message{Key: key, Value: raw}
}

func newResultWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
	}
}
