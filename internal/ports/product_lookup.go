package ports

import (
	"context"

	"github.com/Gunvolt24/parcel_product/internal/domain"
)

// ProductLookup — справочник товаров.
// Load возвращает domain.Found/domain.NotFound; ошибка означает сбой самого справочника.
type ProductLookup interface {
	Load(ctx context.Context, code float64) (domain.LookupResult, error)
}
