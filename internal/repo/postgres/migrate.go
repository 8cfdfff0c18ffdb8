package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver name = "pgx"
	"github.com/pressly/goose/v3"

	"github.com/Gunvolt24/parcel_product/internal/ports"
	"github.com/Gunvolt24/parcel_product/migrations"
)

// gooseLogger — goose пишет через ports.Logger.
type gooseLogger struct {
	ctx context.Context
	log ports.Logger
}

func (l gooseLogger) Printf(format string, v ...any) { l.log.Infof(l.ctx, "goose: "+format, v...) }
func (l gooseLogger) Fatalf(format string, v ...any) { l.log.Errorf(l.ctx, "goose: "+format, v...) }

// Migrate — применяет встроенные миграции схемы справочника до последней версии.
func Migrate(ctx context.Context, dsn string, log ports.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{ctx: ctx, log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
