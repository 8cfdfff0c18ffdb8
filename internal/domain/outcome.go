package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// OutcomeKind — итог проверки запроса.
type OutcomeKind int

const (
	Accepted OutcomeKind = iota
	Rejected
	Faulted
)

func (k OutcomeKind) String() string {
	switch k {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Faulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Outcome — ровно один итог на запрос.
// Для Rejected Err — *ValidationError, для Faulted — ошибка, обёрнутая в ErrInternal.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

// OutcomeFromError классифицирует ошибку конвейера:
// nil — Accepted, ErrInternal — Faulted, ValidationError — Rejected, прочее — Faulted.
func OutcomeFromError(err error) Outcome {
	switch {
	case err == nil:
		return Outcome{Kind: Accepted}
	case errors.Is(err, ErrInternal):
		return Outcome{Kind: Faulted, Err: err}
	}
	if _, ok := AsValidationError(err); ok {
		return Outcome{Kind: Rejected, Err: err}
	}
	return Outcome{Kind: Faulted, Err: fmt.Errorf("%w: %w", ErrInternal, err)}
}

// StatusCode — HTTP-код для итога.
func (o Outcome) StatusCode() int {
	switch o.Kind {
	case Accepted:
		return http.StatusOK
	case Rejected:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Reason — причина отклонения (пусто для Accepted и Faulted).
func (o Outcome) Reason() (ErrorKind, string) {
	if o.Kind != Rejected {
		return "", ""
	}
	ve, ok := AsValidationError(o.Err)
	if !ok {
		return "", ""
	}
	return ve.Kind, ve.FieldPath()
}

// Message — текст для клиента. Для Faulted всегда фиксированный.
func (o Outcome) Message() string {
	switch o.Kind {
	case Accepted:
		return "ok"
	case Rejected:
		return o.Err.Error()
	default:
		return ErrInternal.Error()
	}
}
