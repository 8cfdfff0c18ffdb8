package validate_test

import (
	"encoding/json"
	"testing"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/pkg/validate"
)

func validRaw() domain.RawRequest {
	return domain.RawRequest{
		"product": map[string]any{
			"code":  "1",
			"name":  "Notebook",
			"value": json.Number("3500"),
		},
		"paymentCondition": map[string]any{
			"entryValue":      0,
			"parcelsQuantity": "12",
		},
	}
}

func without(group, field string) domain.RawRequest {
	raw := validRaw()
	delete(raw[group].(map[string]any), field)
	return raw
}

func withField(group, field string, v any) domain.RawRequest {
	raw := validRaw()
	raw[group].(map[string]any)[field] = v
	return raw
}

func TestExtractRequiredGroups_OK(t *testing.T) {
	product, payment, err := validate.ExtractRequiredGroups(validRaw())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Code != "1" || product.Name != "Notebook" || product.Value != json.Number("3500") {
		t.Fatalf("unexpected product %+v", product)
	}
	if payment.EntryValue != 0 || payment.ParcelsQuantity != "12" {
		t.Fatalf("unexpected payment %+v", payment)
	}
}

func TestExtractRequiredGroups_Missing(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawRequest
		path string
	}{
		{"no body", domain.RawRequest{}, "product"},
		{"nil body", nil, "product"},
		{"no product", func() domain.RawRequest { r := validRaw(); delete(r, "product"); return r }(), "product"},
		{"empty product", func() domain.RawRequest { r := validRaw(); r["product"] = map[string]any{}; return r }(), "product"},
		{"product not object", func() domain.RawRequest { r := validRaw(); r["product"] = "x"; return r }(), "product"},
		{"null product", func() domain.RawRequest { r := validRaw(); r["product"] = nil; return r }(), "product"},
		{"no payment", func() domain.RawRequest { r := validRaw(); delete(r, "paymentCondition"); return r }(), "paymentCondition"},
		{"empty payment", func() domain.RawRequest { r := validRaw(); r["paymentCondition"] = map[string]any{}; return r }(), "paymentCondition"},
		{"both groups empty -> product first", domain.RawRequest{"product": map[string]any{}, "paymentCondition": map[string]any{}}, "product"},
		{"no code", without("product", "code"), "product.code"},
		{"empty code", withField("product", "code", ""), "product.code"},
		{"null code", withField("product", "code", nil), "product.code"},
		{"no name", without("product", "name"), "product.name"},
		{"empty name", withField("product", "name", ""), "product.name"},
		{"no value", without("product", "value"), "product.value"},
		{"no entryValue", without("paymentCondition", "entryValue"), "paymentCondition.entryValue"},
		{"empty entryValue", withField("paymentCondition", "entryValue", ""), "paymentCondition.entryValue"},
		{"no parcelsQuantity", without("paymentCondition", "parcelsQuantity"), "paymentCondition.parcelsQuantity"},
		{
			"name and value missing -> name first",
			func() domain.RawRequest {
				r := without("product", "name")
				delete(r["product"].(map[string]any), "value")
				return r
			}(),
			"product.name",
		},
		{
			"product and payment fields missing -> product first",
			func() domain.RawRequest {
				r := without("product", "value")
				delete(r["paymentCondition"].(map[string]any), "entryValue")
				return r
			}(),
			"product.value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := validate.ExtractRequiredGroups(tt.raw)
			if !domain.IsMissingField(err) {
				t.Fatalf("want MissingField, got %v", err)
			}
			ve, _ := domain.AsValidationError(err)
			if ve.FieldPath() != tt.path {
				t.Fatalf("want path %q, got %q", tt.path, ve.FieldPath())
			}
		})
	}
}

func TestExtractRequiredGroups_ZeroIsPresent(t *testing.T) {
	// 0 — присутствующее значение; его диапазон проверяет нормализатор
	raw := withField("product", "code", 0)
	if _, _, err := validate.ExtractRequiredGroups(raw); err != nil {
		t.Fatalf("zero must count as present, got %v", err)
	}
}

func TestExtractGroups_AcceptsNestedRawRequest(t *testing.T) {
	raw := domain.RawRequest{
		"product":          domain.RawRequest{"code": 1},
		"paymentCondition": map[string]any{"entryValue": 1},
	}
	groups, err := validate.ExtractGroups(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups.Product) != 1 || len(groups.PaymentCondition) != 1 {
		t.Fatalf("unexpected groups %+v", groups)
	}
}
