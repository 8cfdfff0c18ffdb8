package logger_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/parcel_product/pkg/ctxmeta"
	"github.com/Gunvolt24/parcel_product/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_AddsRequestIDFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := logger.NewFromZap(zap.New(core))

	ctx := ctxmeta.WithRequestID(context.Background(), "req-7")
	l.Warnf(ctx, "parcel rejected field=%s", "product.code")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Message != "parcel rejected field=product.code" {
		t.Fatalf("unexpected message %q", e.Message)
	}
	if e.Level != zapcore.WarnLevel {
		t.Fatalf("want warn level, got %v", e.Level)
	}
	if got := e.ContextMap()["request_id"]; got != "req-7" {
		t.Fatalf("request_id field: want req-7, got %v", got)
	}
}

func TestZapLogger_NoMetadata_NoFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := logger.NewFromZap(zap.New(core))

	l.Infof(context.Background(), "hello")
	l.Errorf(context.Background(), "boom")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if len(e.Context) != 0 {
			t.Fatalf("unexpected fields %v", e.ContextMap())
		}
	}
}

func TestNewZapLogger_DevAndProd(t *testing.T) {
	for _, prod := range []bool{false, true} {
		l, cleanup, err := logger.NewZapLogger(prod)
		if err != nil {
			t.Fatalf("NewZapLogger(%v): %v", prod, err)
		}
		if l.Base() == nil || l.Sugared() == nil {
			t.Fatalf("NewZapLogger(%v): nil logger", prod)
		}
		_ = cleanup()
	}
}
