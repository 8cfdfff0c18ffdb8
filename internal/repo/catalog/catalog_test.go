package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/internal/repo/catalog"
)

const catalogJSON = `[
	{"code": 1, "name": "Notebook", "value": 3500},
	{"code": 2, "name": "Mouse", "value": 49.9}
]`

func TestRead_LoadFoundAndNotFound(t *testing.T) {
	c, err := catalog.Read(strings.NewReader(catalogJSON))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("want 2 records, got %d", c.Len())
	}

	res, err := c.Load(context.Background(), 2)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	rec, found := res.Record()
	if !found || rec != (domain.ProductRecord{Code: 2, Name: "Mouse", Value: 49.9}) {
		t.Fatalf("unexpected record found=%v rec=%+v", found, rec)
	}

	res, err = c.Load(context.Background(), 3)
	if err != nil || res.IsFound() {
		t.Fatalf("want not found, got found=%v err=%v", res.IsFound(), err)
	}
}

func TestRead_Errors(t *testing.T) {
	tests := map[string]string{
		"invalid_json":   `[{"code": 1`,
		"unknown_field":  `[{"code": 1, "name": "a", "value": 1, "color": "red"}]`,
		"duplicate_code": `[{"code": 1, "name": "a", "value": 1}, {"code": 1, "name": "b", "value": 2}]`,
		"zero_code":      `[{"code": 0, "name": "a", "value": 1}]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := catalog.Read(strings.NewReader(body)); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(catalogJSON), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := catalog.Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("want 2 records, got %d", c.Len())
	}

	if _, err := catalog.Open(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	c, _ := catalog.New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Load(ctx, 1); err == nil {
		t.Fatalf("expected context error")
	}
}
