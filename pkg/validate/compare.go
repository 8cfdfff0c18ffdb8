package validate

import "github.com/Gunvolt24/parcel_product/internal/domain"

// Compare — сверка товара с эталонной записью: code, name, value.
// Сравнение строгое: без округлений и без учёта регистра. Возвращает первое расхождение.
func Compare(product domain.ParsedProduct, record domain.ProductRecord) error {
	switch {
	case product.Code != record.Code:
		return domain.NewIncompatibleFieldError(domain.FieldCode, domain.GroupProduct)
	case product.Name != record.Name:
		return domain.NewIncompatibleFieldError(domain.FieldName, domain.GroupProduct)
	case product.Value != record.Value:
		return domain.NewIncompatibleFieldError(domain.FieldValue, domain.GroupProduct)
	}
	return nil
}
