package validate

import "github.com/Gunvolt24/parcel_product/internal/domain"

// Порядок проверки полей внутри групп. Определяет, какая ошибка будет первой.
var (
	productFields = []string{domain.FieldCode, domain.FieldName, domain.FieldValue}
	paymentFields = []string{domain.FieldEntryValue, domain.FieldParcelsQuantity}
)

// Groups — группы запроса после проверки наличия.
type Groups struct {
	Product          map[string]any
	PaymentCondition map[string]any
}

// ExtractRequiredGroups — проверяет наличие групп и обязательных полей запроса.
// Порядок: product, paymentCondition, product.code/name/value,
// paymentCondition.entryValue/parcelsQuantity. Возвращает первую MissingField ошибку.
func ExtractRequiredGroups(raw domain.RawRequest) (domain.ProductInput, domain.PaymentConditionInput, error) {
	groups, err := ExtractGroups(raw)
	if err != nil {
		return domain.ProductInput{}, domain.PaymentConditionInput{}, err
	}
	product, err := ExtractProduct(groups.Product)
	if err != nil {
		return domain.ProductInput{}, domain.PaymentConditionInput{}, err
	}
	payment, err := ExtractPaymentCondition(groups.PaymentCondition)
	if err != nil {
		return domain.ProductInput{}, domain.PaymentConditionInput{}, err
	}
	return product, payment, nil
}

// ExtractGroups — группы product и paymentCondition должны быть непустыми объектами.
func ExtractGroups(raw domain.RawRequest) (Groups, error) {
	product, err := requireGroup(raw, domain.GroupProduct)
	if err != nil {
		return Groups{}, err
	}
	payment, err := requireGroup(raw, domain.GroupPaymentCondition)
	if err != nil {
		return Groups{}, err
	}
	return Groups{Product: product, PaymentCondition: payment}, nil
}

// ExtractProduct — поля code, name, value группы product.
func ExtractProduct(group map[string]any) (domain.ProductInput, error) {
	if err := requireFields(group, domain.GroupProduct, productFields); err != nil {
		return domain.ProductInput{}, err
	}
	return domain.ProductInput{
		Code:  group[domain.FieldCode],
		Name:  group[domain.FieldName],
		Value: group[domain.FieldValue],
	}, nil
}

// ExtractPaymentCondition — поля entryValue, parcelsQuantity группы paymentCondition.
func ExtractPaymentCondition(group map[string]any) (domain.PaymentConditionInput, error) {
	if err := requireFields(group, domain.GroupPaymentCondition, paymentFields); err != nil {
		return domain.PaymentConditionInput{}, err
	}
	return domain.PaymentConditionInput{
		EntryValue:      group[domain.FieldEntryValue],
		ParcelsQuantity: group[domain.FieldParcelsQuantity],
	}, nil
}

func requireGroup(raw domain.RawRequest, name string) (map[string]any, error) {
	group, ok := asObject(raw[name])
	if !ok || len(group) == 0 {
		return nil, domain.NewMissingFieldError(name)
	}
	return group, nil
}

func requireFields(group map[string]any, groupName string, fields []string) error {
	for _, f := range fields {
		if !present(group, f) {
			return domain.NewMissingFieldError(domain.Path(groupName, f))
		}
	}
	return nil
}

// present — поле есть, не null и не пустая строка.
func present(group map[string]any, key string) bool {
	v, ok := group[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return false
	}
	return true
}

func asObject(v any) (map[string]any, bool) {
	switch g := v.(type) {
	case map[string]any:
		return g, true
	case domain.RawRequest:
		return g, true
	default:
		return nil, false
	}
}
