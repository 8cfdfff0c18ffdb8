package validate

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/shopspring/decimal"
)

var errNotNumeric = errors.New("not a number")

// ParseProduct — разбор числовых полей товара: code, затем value; оба строго > 0.
// Name передаётся без числовых ограничений.
func ParseProduct(in domain.ProductInput) (domain.ParsedProduct, error) {
	code, err := parsePositive(in.Code, domain.Path(domain.GroupProduct, domain.FieldCode))
	if err != nil {
		return domain.ParsedProduct{}, err
	}
	value, err := parsePositive(in.Value, domain.Path(domain.GroupProduct, domain.FieldValue))
	if err != nil {
		return domain.ParsedProduct{}, err
	}
	name, ok := scalarText(in.Name)
	if !ok {
		return domain.ParsedProduct{}, domain.NewInvalidFieldError(domain.Path(domain.GroupProduct, domain.FieldName))
	}
	return domain.ParsedProduct{Code: code, Name: name, Value: value}, nil
}

// ParsePaymentCondition — разбор условия оплаты: entryValue >= 0 (ноль допустим),
// затем parcelsQuantity > 0.
func ParsePaymentCondition(in domain.PaymentConditionInput) (domain.ParsedPaymentCondition, error) {
	entryPath := domain.Path(domain.GroupPaymentCondition, domain.FieldEntryValue)
	entry, err := ParseNumber(in.EntryValue)
	if err != nil || entry < 0 {
		return domain.ParsedPaymentCondition{}, domain.NewInvalidFieldError(entryPath)
	}
	parcels, err := parsePositive(in.ParcelsQuantity, domain.Path(domain.GroupPaymentCondition, domain.FieldParcelsQuantity))
	if err != nil {
		return domain.ParsedPaymentCondition{}, err
	}
	return domain.ParsedPaymentCondition{EntryValue: entry, ParcelsQuantity: parcels}, nil
}

func parsePositive(v any, path string) (float64, error) {
	f, err := ParseNumber(v)
	if err != nil || f <= 0 {
		return 0, domain.NewInvalidFieldError(path)
	}
	return f, nil
}

// ParseNumber — приводит строку или число к float64.
// Строки разбираются как десятичная запись (с экспонентой); NaN и бесконечности не принимаются.
func ParseNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case json.Number:
		return parseDecimal(n.String())
	case string:
		return parseDecimal(n)
	default:
		return 0, errNotNumeric
	}
}

// Границы числовой записи: длина текста и порядок числа (float64 не выходит за 1e±400).
const (
	maxNumberText = 64
	maxMagnitude  = 400
)

func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxNumberText {
		return 0, errNotNumeric
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if d.IsZero() {
		return 0, nil
	}
	// порядок числа: позиция десятичной точки относительно цифр коэффициента
	magnitude := int(d.Exponent()) + len(d.Abs().Coefficient().String())
	if magnitude > maxMagnitude || magnitude < -maxMagnitude {
		return 0, errNotNumeric
	}
	f := d.InexactFloat64()
	if f == 0 {
		// ненулевая запись, не представимая в float64
		return 0, errNotNumeric
	}
	return finite(f)
}

func finite(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumeric
	}
	return f, nil
}

// scalarText — имя товара как строка; числа допускаются и переводятся в текст.
func scalarText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	default:
		return "", false
	}
}
