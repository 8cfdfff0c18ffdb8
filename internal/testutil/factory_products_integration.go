//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	mrand "math/rand"

	"github.com/Gunvolt24/parcel_product/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeProducts — n записей справочника с уникальными кодами и именами.
func MakeProducts(n int) []domain.ProductRecord {
	base := float64(mrand.Intn(1_000_000) + 1)
	out := make([]domain.ProductRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.ProductRecord{
			Code:  base + float64(i),
			Name:  "product-" + UniqSuffix(),
			Value: 100 + float64(i),
		})
	}
	return out
}

// ParcelRequestJSON — тело запроса, совместимое с записью справочника.
func ParcelRequestJSON(rec domain.ProductRecord, opts ...func(map[string]any)) []byte {
	req := map[string]any{
		domain.GroupProduct: map[string]any{
			domain.FieldCode:  rec.Code,
			domain.FieldName:  rec.Name,
			domain.FieldValue: rec.Value,
		},
		domain.GroupPaymentCondition: map[string]any{
			domain.FieldEntryValue:      0,
			domain.FieldParcelsQuantity: 3,
		},
	}
	for _, opt := range opts {
		opt(req)
	}
	raw, _ := json.Marshal(req)
	return raw
}
