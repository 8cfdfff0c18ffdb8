package ports

import (
	"context"

	"github.com/Gunvolt24/parcel_product/internal/domain"
)

// ParcelValidator — проверка запроса товар + условие оплаты.
type ParcelValidator interface {
	Validate(ctx context.Context, raw domain.RawRequest) domain.Outcome
}
