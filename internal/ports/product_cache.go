package ports

import (
	"context"

	"github.com/Gunvolt24/parcel_product/internal/domain"
)

// ProductCache — интерфейс кэша эталонных записей.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1).
type ProductCache interface {
	// Get — (record, true) при попадании, (zero, false) при промахе/истечении.
	Get(ctx context.Context, code float64) (domain.ProductRecord, bool)

	// Set — сохранить/обновить запись.
	Set(ctx context.Context, record domain.ProductRecord) error

	// WarmUp — массовая загрузка (при старте). Поддерживает отмену контекста.
	WarmUp(ctx context.Context, records []domain.ProductRecord) error
}
