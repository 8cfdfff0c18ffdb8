package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что ProductRepository удовлетворяет интерфейсу ProductRepository.
var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository — справочник товаров на Postgres (pgxpool).
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository - конструктор ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Load — запись по коду. Отсутствие записи — domain.NotFound() без ошибки.
func (r *ProductRepository) Load(ctx context.Context, code float64) (domain.LookupResult, error) {
	var rec domain.ProductRecord
	err := r.pool.QueryRow(ctx, `
		SELECT code, name, value FROM products WHERE code = $1
	`, code).Scan(&rec.Code, &rec.Name, &rec.Value)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound(), nil
	}
	if err != nil {
		return domain.LookupResult{}, fmt.Errorf("select product: %w", err)
	}
	return domain.Found(rec), nil
}

// Upsert — идемпотентная запись товара по коду.
func (r *ProductRepository) Upsert(ctx context.Context, rec domain.ProductRecord) error {
	if rec.Code <= 0 {
		return errors.New("product code must be positive")
	}
	if strings.TrimSpace(rec.Name) == "" {
		return errors.New("product name is required")
	}

	if _, err := r.pool.Exec(ctx, `
		INSERT INTO products (code, name, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			value = EXCLUDED.value,
			updated_at = now()
	`, rec.Code, rec.Name, rec.Value); err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// LastN — последние изменённые n записей (для прогрева кэша).
func (r *ProductRepository) LastN(ctx context.Context, n int) ([]domain.ProductRecord, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT code, name, value FROM products
		ORDER BY updated_at DESC, code
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ProductRecord, 0, n)
	for rows.Next() {
		var rec domain.ProductRecord
		if err := rows.Scan(&rec.Code, &rec.Name, &rec.Value); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("products rows: %w", err)
	}
	return out, nil
}
