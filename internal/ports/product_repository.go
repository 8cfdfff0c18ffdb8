package ports

import (
	"context"

	"github.com/Gunvolt24/parcel_product/internal/domain"
)

// ProductRepository — хранилище справочника товаров.
type ProductRepository interface {
	ProductLookup
	Upsert(ctx context.Context, record domain.ProductRecord) error
	LastN(ctx context.Context, n int) ([]domain.ProductRecord, error)
}
