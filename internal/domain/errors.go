package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest — базовая (sentinel) ошибка: запрос отклонён проверками.
// Все ValidationError совпадают с ней через errors.Is.
var ErrInvalidRequest = errors.New("parcel request rejected")

// ErrInternal — сбой внутри конвейера (например, отказ справочника).
// Текст исходной ошибки наружу не отдаётся.
var ErrInternal = errors.New("internal server error")

// ErrorKind — причина отклонения запроса.
type ErrorKind string

const (
	KindMissingField      ErrorKind = "missing_field"
	KindInvalidField      ErrorKind = "invalid_field"
	KindNotFound          ErrorKind = "not_found"
	KindIncompatibleField ErrorKind = "incompatible_field"
)

// ValidationError — отклонение запроса с указанием поля.
// Для MissingField/InvalidField Field — точечный путь ("product.code");
// для NotFound Field пуст, а Model — имя модели; для IncompatibleField — имя поля и модель.
type ValidationError struct {
	Kind  ErrorKind
	Field string
	Model string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("missing param: %s", e.Field)
	case KindInvalidField:
		return fmt.Sprintf("invalid param: %s", e.Field)
	case KindNotFound:
		return fmt.Sprintf("%s: not found", e.Model)
	case KindIncompatibleField:
		return fmt.Sprintf("incompatibility found: %s in %s", e.Field, e.Model)
	default:
		return fmt.Sprintf("rejected: %s", e.Field)
	}
}

// Is — любая ValidationError совпадает с ErrInvalidRequest.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// FieldPath — путь, по которому клиент находит проблемное поле.
func (e *ValidationError) FieldPath() string {
	switch e.Kind {
	case KindNotFound:
		return e.Model
	case KindIncompatibleField:
		return Path(e.Model, e.Field)
	default:
		return e.Field
	}
}

// NewMissingFieldError — обязательное поле отсутствует или пустое.
func NewMissingFieldError(path string) error {
	return &ValidationError{Kind: KindMissingField, Field: path}
}

// NewInvalidFieldError — поле есть, но не проходит разбор или ограничение диапазона.
func NewInvalidFieldError(path string) error {
	return &ValidationError{Kind: KindInvalidField, Field: path}
}

// NewNotFoundError — справочник не знает запись модели.
func NewNotFoundError(model string) error {
	return &ValidationError{Kind: KindNotFound, Model: model}
}

// NewIncompatibleFieldError — значение поля расходится с эталонной записью.
func NewIncompatibleFieldError(field, model string) error {
	return &ValidationError{Kind: KindIncompatibleField, Field: field, Model: model}
}

// AsValidationError достаёт ValidationError из цепочки ошибок.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func isKind(err error, kind ErrorKind) bool {
	ve, ok := AsValidationError(err)
	return ok && ve.Kind == kind
}

// IsMissingField проверяет, что ошибка — отсутствующее поле.
func IsMissingField(err error) bool { return isKind(err, KindMissingField) }

// IsInvalidField проверяет, что ошибка — некорректное поле.
func IsInvalidField(err error) bool { return isKind(err, KindInvalidField) }

// IsNotFound проверяет, что ошибка — запись не найдена.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsIncompatibleField проверяет, что ошибка — расхождение с эталоном.
func IsIncompatibleField(err error) bool { return isKind(err, KindIncompatibleField) }
