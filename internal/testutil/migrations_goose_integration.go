//go:build integration

package testutil

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Gunvolt24/parcel_product/internal/repo/postgres"
	"github.com/Gunvolt24/parcel_product/pkg/logger"
)

// ApplyMigrationsGoose — встроенные миграции справочника тем же путём, что и при старте сервиса.
func ApplyMigrationsGoose(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return postgres.Migrate(ctx, dsn, logger.NewFromZap(zap.NewNop()))
}
