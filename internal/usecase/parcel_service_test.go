package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/internal/ports/mocks"
	"github.com/Gunvolt24/parcel_product/internal/usecase"
	"github.com/golang/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var notebook = domain.ProductRecord{Code: 1, Name: "Notebook", Value: 3500}

func request(code, name, value, entry, parcels any) domain.RawRequest {
	return domain.RawRequest{
		"product": map[string]any{
			"code":  code,
			"name":  name,
			"value": value,
		},
		"paymentCondition": map[string]any{
			"entryValue":      entry,
			"parcelsQuantity": parcels,
		},
	}
}

func TestValidate_Accepted_SingleLookupWithParsedCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockProductLookup(ctrl)

	// код "1" приходит строкой, в справочник уходит число 1
	lookup.EXPECT().Load(gomock.Any(), 1.0).Return(domain.Found(notebook), nil).Times(1)

	svc := usecase.NewParcelService(lookup, noopLogger{})
	out := svc.Validate(context.Background(), request("1", "Notebook", json.Number("3500"), "0", 12))

	if out.Kind != domain.Accepted || out.StatusCode() != http.StatusOK || out.Err != nil {
		t.Fatalf("want accepted, got %+v", out)
	}
}

func TestValidate_LocalRejections_NoLookup(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawRequest
		kind domain.ErrorKind
		path string
	}{
		{"empty body", domain.RawRequest{}, domain.KindMissingField, "product"},
		{"missing payment group", domain.RawRequest{"product": map[string]any{"code": 1}}, domain.KindMissingField, "paymentCondition"},
		{"missing name", request(1, "", 1, 0, 1), domain.KindMissingField, "product.name"},
		{"missing parcels", request(1, "n", 1, 0, nil), domain.KindMissingField, "paymentCondition.parcelsQuantity"},
		{"missing field beats invalid field", request("abc", "n", 1, 0, nil), domain.KindMissingField, "paymentCondition.parcelsQuantity"},
		{"invalid code", request("abc", "n", 1, 0, 1), domain.KindInvalidField, "product.code"},
		{"invalid value", request(1, "n", "0", 0, 1), domain.KindInvalidField, "product.value"},
		{"product numeric before payment numeric", request(1, "n", -1, -1, 1), domain.KindInvalidField, "product.value"},
		{"negative entry", request(1, "n", 1, "-5", 1), domain.KindInvalidField, "paymentCondition.entryValue"},
		{"zero parcels", request(1, "n", 1, 0, "0"), domain.KindInvalidField, "paymentCondition.parcelsQuantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			lookup := mocks.NewMockProductLookup(ctrl)
			lookup.EXPECT().Load(gomock.Any(), gomock.Any()).Times(0)

			svc := usecase.NewParcelService(lookup, noopLogger{})
			out := svc.Validate(context.Background(), tt.raw)

			if out.Kind != domain.Rejected || out.StatusCode() != http.StatusBadRequest {
				t.Fatalf("want rejected, got %+v", out)
			}
			kind, path := out.Reason()
			if kind != tt.kind || path != tt.path {
				t.Fatalf("want %s at %s, got %s at %s", tt.kind, tt.path, kind, path)
			}
		})
	}
}

func TestValidate_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockProductLookup(ctrl)
	lookup.EXPECT().Load(gomock.Any(), 99.0).Return(domain.NotFound(), nil)

	svc := usecase.NewParcelService(lookup, noopLogger{})
	out := svc.Validate(context.Background(), request(99, "n", 1, 0, 1))

	if !domain.IsNotFound(out.Err) || out.StatusCode() != http.StatusBadRequest {
		t.Fatalf("want not found, got %+v", out)
	}
	if out.Message() != "product: not found" {
		t.Fatalf("unexpected message %q", out.Message())
	}
}

func TestValidate_Incompatible_FirstMismatchWins(t *testing.T) {
	tests := []struct {
		name  string
		raw   domain.RawRequest
		field string
	}{
		{"name and value differ", request(1, "Laptop", 1, 0, 1), "name"},
		{"value differs", request(1, "Notebook", "3500.5", 0, 1), "value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			lookup := mocks.NewMockProductLookup(ctrl)
			lookup.EXPECT().Load(gomock.Any(), 1.0).Return(domain.Found(notebook), nil)

			svc := usecase.NewParcelService(lookup, noopLogger{})
			out := svc.Validate(context.Background(), tt.raw)

			if !domain.IsIncompatibleField(out.Err) {
				t.Fatalf("want incompatible, got %+v", out)
			}
			ve, _ := domain.AsValidationError(out.Err)
			if ve.Field != tt.field || ve.Model != domain.GroupProduct {
				t.Fatalf("want %s in product, got %s in %s", tt.field, ve.Field, ve.Model)
			}
		})
	}
}

func TestValidate_LookupFault_Internal(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockProductLookup(ctrl)
	lookup.EXPECT().Load(gomock.Any(), 1.0).Return(domain.LookupResult{}, errors.New("pq: password authentication failed"))

	svc := usecase.NewParcelService(lookup, noopLogger{})
	out := svc.Validate(context.Background(), request(1, "Notebook", 3500, 0, 1))

	if out.Kind != domain.Faulted || out.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("want faulted, got %+v", out)
	}
	if !errors.Is(out.Err, domain.ErrInternal) {
		t.Fatalf("fault must wrap ErrInternal: %v", out.Err)
	}
	if strings.Contains(out.Message(), "password") {
		t.Fatalf("fault message leaks cause: %q", out.Message())
	}
}

func TestValidate_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockProductLookup(ctrl)
	lookup.EXPECT().Load(gomock.Any(), 1.0).Return(domain.Found(notebook), nil).Times(2)

	svc := usecase.NewParcelService(lookup, noopLogger{})
	raw := request(1, "Notebook", 3500, 0, 1)

	first := svc.Validate(context.Background(), raw)
	second := svc.Validate(context.Background(), raw)
	if first.Kind != second.Kind || first.Kind != domain.Accepted {
		t.Fatalf("results differ: %+v vs %+v", first, second)
	}
}

func TestSteps_Order(t *testing.T) {
	svc := usecase.NewParcelService(nil, noopLogger{})
	want := []string{
		usecase.StepGroups,
		usecase.StepProductFields,
		usecase.StepPaymentFields,
		usecase.StepProductNumeric,
		usecase.StepPaymentNumeric,
		usecase.StepLookup,
		usecase.StepCompatibility,
	}
	if got := svc.Steps(); !reflect.DeepEqual(got, want) {
		t.Fatalf("steps: want %v, got %v", want, got)
	}
}

func TestHandleMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := mocks.NewMockProductLookup(ctrl)
	svc := usecase.NewParcelService(lookup, noopLogger{})

	// невалидный JSON
	if err := svc.HandleMessage(context.Background(), []byte("{")); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("want ErrInvalidRequest for bad json, got %v", err)
	}

	// отклонение
	if err := svc.HandleMessage(context.Background(), []byte(`{"product":{}}`)); !domain.IsMissingField(err) {
		t.Fatalf("want MissingField, got %v", err)
	}

	// сбой справочника
	lookup.EXPECT().Load(gomock.Any(), 1.0).Return(domain.LookupResult{}, context.DeadlineExceeded)
	msg := []byte(`{"product":{"code":1,"name":"Notebook","value":3500},"paymentCondition":{"entryValue":0,"parcelsQuantity":1}}`)
	if err := svc.HandleMessage(context.Background(), msg); !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("want ErrInternal, got %v", err)
	}

	// успех
	lookup.EXPECT().Load(gomock.Any(), 1.0).Return(domain.Found(notebook), nil)
	if err := svc.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestDecodeRequest(t *testing.T) {
	req, err := usecase.DecodeRequest(strings.NewReader(`{"product":{"code":1.50}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	code := req["product"].(map[string]any)["code"]
	if code != json.Number("1.50") {
		t.Fatalf("numbers must stay json.Number, got %#v", code)
	}

	if req, err := usecase.DecodeRequest(strings.NewReader("null")); err != nil || req == nil || len(req) != 0 {
		t.Fatalf("null body must decode to empty request, got %v %v", req, err)
	}

	bad := []string{"", "{", "[1,2]", `{"a":1} {"b":2}`, `"text"`}
	for _, b := range bad {
		if _, err := usecase.DecodeRequest(strings.NewReader(b)); err == nil {
			t.Fatalf("want error for %q", b)
		}
	}
}
