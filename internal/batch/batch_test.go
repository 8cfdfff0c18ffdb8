package batch_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gunvolt24/parcel_product/internal/batch"
	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/internal/repo/catalog"
	"github.com/Gunvolt24/parcel_product/internal/usecase"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

const (
	okLine       = `{"product":{"code":1,"name":"Notebook","value":3500},"paymentCondition":{"entryValue":0,"parcelsQuantity":12}}`
	missingLine  = `{"product":{"code":1,"name":"Notebook"},"paymentCondition":{"entryValue":0,"parcelsQuantity":12}}`
	unknownLine  = `{"product":{"code":2,"name":"Pen","value":1},"paymentCondition":{"entryValue":0,"parcelsQuantity":1}}`
	garbageLine  = `not-a-json`
	renamedValue = `{"product":{"code":1,"name":"Notebook","value":"3499"},"paymentCondition":{"entryValue":0,"parcelsQuantity":1}}`
)

func newValidator(t *testing.T) *usecase.ParcelService {
	t.Helper()
	cat, err := catalog.New([]domain.ProductRecord{{Code: 1, Name: "Notebook", Value: 3500}})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return usecase.NewParcelService(cat, noopLogger{})
}

func decodeReports(t *testing.T, out string) []batch.Report {
	t.Helper()
	var reps []batch.Report
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var r batch.Report
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("unmarshal report %q: %v", line, err)
		}
		reps = append(reps, r)
	}
	return reps
}

func TestValidateJSONLStream_Mixed(t *testing.T) {
	input := strings.Join([]string{okLine, missingLine, "", unknownLine, garbageLine, renamedValue}, "\n")

	var out bytes.Buffer
	sum, err := batch.ValidateJSONLStream(context.Background(), newValidator(t), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != (batch.Summary{Accepted: 1, Rejected: 4}) {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	reps := decodeReports(t, out.String())
	if len(reps) != 5 {
		t.Fatalf("want 5 reports, got %d", len(reps))
	}
	want := []batch.Report{
		{Index: 1, Status: "accepted"},
		{Index: 2, Status: "rejected", Error: "missing_field", Field: "product.value", Message: "missing param: product.value"},
		{Index: 4, Status: "rejected", Error: "not_found", Field: "product", Message: "product: not found"},
		{Index: 5, Status: "rejected", Error: "invalid_json", Message: "invalid json"},
		{Index: 6, Status: "rejected", Error: "incompatible_field", Field: "product.value", Message: "incompatibility found: value in product"},
	}
	for i := range want {
		if reps[i] != want[i] {
			t.Fatalf("report %d: want %+v, got %+v", i, want[i], reps[i])
		}
	}
}

func TestValidateJSON_ObjectAndArray(t *testing.T) {
	var out bytes.Buffer
	sum, err := batch.ValidateJSON(context.Background(), newValidator(t), strings.NewReader(okLine), &out)
	if err != nil || sum != (batch.Summary{Accepted: 1}) {
		t.Fatalf("single object: sum=%+v err=%v", sum, err)
	}

	out.Reset()
	arr := "[" + okLine + "," + missingLine + "]"
	sum, err = batch.ValidateJSON(context.Background(), newValidator(t), strings.NewReader(arr), &out)
	if err != nil || sum != (batch.Summary{Accepted: 1, Rejected: 1}) {
		t.Fatalf("array: sum=%+v err=%v", sum, err)
	}
	if reps := decodeReports(t, out.String()); reps[1].Index != 1 || reps[1].Field != "product.value" {
		t.Fatalf("unexpected reports %+v", reps)
	}
}

func TestValidateFile_AutoFormat(t *testing.T) {
	dir := t.TempDir()

	jsonl := filepath.Join(dir, "list.jsonl")
	if err := os.WriteFile(jsonl, []byte(okLine+"\n"+unknownLine+"\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	var out bytes.Buffer
	sum, err := batch.ValidateFile(context.Background(), newValidator(t), jsonl, batch.FormatAuto, &out)
	if err != nil || sum.String() != "1 accepted / 1 rejected / 0 faulted" {
		t.Fatalf("jsonl: sum=%s err=%v", sum, err)
	}

	one := filepath.Join(dir, "one.json")
	if err := os.WriteFile(one, []byte(okLine), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	out.Reset()
	sum, err = batch.ValidateFile(context.Background(), newValidator(t), one, batch.FormatAuto, &out)
	if err != nil || sum.Total() != 1 || sum.Accepted != 1 {
		t.Fatalf("json: sum=%s err=%v", sum, err)
	}

	if _, err := batch.ValidateFile(context.Background(), newValidator(t), filepath.Join(dir, "missing.json"), batch.FormatAuto, &out); err == nil {
		t.Fatalf("want error for missing file")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]batch.InputFormat{"": batch.FormatAuto, "JSONL": batch.FormatJSONL, " json ": batch.FormatJSON} {
		got, err := batch.ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := batch.ParseFormat("xml"); err == nil {
		t.Fatalf("want error for xml")
	}
}
