// Package catalog — справочник товаров в памяти, загружаемый из JSON-файла.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/internal/ports"
)

var _ ports.ProductLookup = (*Catalog)(nil)

// Catalog — неизменяемый после загрузки справочник; безопасен для конкурентного чтения.
type Catalog struct {
	byCode map[float64]domain.ProductRecord
}

// New — справочник из готовых записей. Дубликат кода — ошибка.
func New(records []domain.ProductRecord) (*Catalog, error) {
	byCode := make(map[float64]domain.ProductRecord, len(records))
	for i, r := range records {
		if r.Code <= 0 {
			return nil, fmt.Errorf("record %d: code must be positive", i)
		}
		if _, dup := byCode[r.Code]; dup {
			return nil, fmt.Errorf("record %d: duplicate code %v", i, r.Code)
		}
		byCode[r.Code] = r
	}
	return &Catalog{byCode: byCode}, nil
}

// Read — справочник из JSON-массива записей {"code","name","value"}.
func Read(r io.Reader) (*Catalog, error) {
	var records []domain.ProductRecord
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(records)
}

// Open — справочник из файла.
func Open(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func (c *Catalog) Load(ctx context.Context, code float64) (domain.LookupResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.LookupResult{}, err
	}
	if rec, ok := c.byCode[code]; ok {
		return domain.Found(rec), nil
	}
	return domain.NotFound(), nil
}

// Len — число записей.
func (c *Catalog) Len() int { return len(c.byCode) }
