package domain

// RawRequest — непроверенное тело запроса в том виде, в каком его разобрал транспорт.
// Ожидаются группы "product" и "paymentCondition".
type RawRequest map[string]any

// Имена групп и полей запроса.
const (
	GroupProduct          = "product"
	GroupPaymentCondition = "paymentCondition"

	FieldCode            = "code"
	FieldName            = "name"
	FieldValue           = "value"
	FieldEntryValue      = "entryValue"
	FieldParcelsQuantity = "parcelsQuantity"
)

// ProductInput — товар из запроса до нормализации (строки или числа как есть).
type ProductInput struct {
	Code  any
	Name  any
	Value any
}

// PaymentConditionInput — условие оплаты до нормализации.
type PaymentConditionInput struct {
	EntryValue      any
	ParcelsQuantity any
}

// ParsedProduct — товар после нормализации: Code > 0, Value > 0.
type ParsedProduct struct {
	Code  float64
	Name  string
	Value float64
}

// ParsedPaymentCondition — условие оплаты после нормализации: EntryValue >= 0, ParcelsQuantity > 0.
type ParsedPaymentCondition struct {
	EntryValue      float64
	ParcelsQuantity float64
}

// ProductRecord — эталонная запись товара из справочника.
type ProductRecord struct {
	Code  float64 `json:"code"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Path — точечный путь к полю запроса, например "product.code".
func Path(group, field string) string { return group + "." + field }
