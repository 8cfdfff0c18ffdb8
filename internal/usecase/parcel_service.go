package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/internal/ports"
	"github.com/Gunvolt24/parcel_product/pkg/metrics"
	"github.com/Gunvolt24/parcel_product/pkg/validate"
)

// Проверка, что ParcelService удовлетворяет интерфейсу ParcelValidator.
var _ ports.ParcelValidator = (*ParcelService)(nil)

// Имена шагов конвейера (используются в логах).
const (
	StepGroups         = "groups"
	StepProductFields  = "product_fields"
	StepPaymentFields  = "payment_fields"
	StepProductNumeric = "product_numeric"
	StepPaymentNumeric = "payment_numeric"
	StepLookup         = "lookup"
	StepCompatibility  = "compatibility"
)

// parcelState — сущности одного запроса; создаются заново на каждый вызов.
type parcelState struct {
	raw     domain.RawRequest
	groups  validate.Groups
	product domain.ProductInput
	payment domain.PaymentConditionInput

	parsedProduct domain.ParsedProduct
	parsedPayment domain.ParsedPaymentCondition

	record domain.ProductRecord
}

// ParcelService — проверка запроса "товар + условие оплаты" (без знаний о транспорте).
type ParcelService struct {
	lookup ports.ProductLookup // справочник товаров
	log    ports.Logger
	steps  chain[parcelState]
}

// NewParcelService — DI-конструктор.
func NewParcelService(lookup ports.ProductLookup, log ports.Logger) *ParcelService {
	s := &ParcelService{lookup: lookup, log: log}
	s.steps = chain[parcelState]{
		{name: StepGroups, run: s.checkGroups},
		{name: StepProductFields, run: s.checkProductFields},
		{name: StepPaymentFields, run: s.checkPaymentFields},
		{name: StepProductNumeric, run: s.parseProduct},
		{name: StepPaymentNumeric, run: s.parsePayment},
		{name: StepLookup, run: s.loadRecord},
		{name: StepCompatibility, run: s.compare},
	}
	return s
}

// Steps — порядок шагов конвейера.
func (s *ParcelService) Steps() []string { return s.steps.names() }

// Validate — прогоняет запрос через конвейер и возвращает единственный итог.
// Справочник вызывается не более одного раза и только после локальных проверок.
func (s *ParcelService) Validate(ctx context.Context, raw domain.RawRequest) domain.Outcome {
	start := time.Now()
	state := &parcelState{raw: raw}

	failedStep, err := s.steps.run(ctx, state)
	outcome := domain.OutcomeFromError(err)

	switch outcome.Kind {
	case domain.Accepted:
		s.log.Infof(ctx, "parcel accepted code=%v took=%s", state.parsedProduct.Code, time.Since(start))
	case domain.Rejected:
		kind, field := outcome.Reason()
		s.log.Warnf(ctx, "parcel rejected step=%s reason=%s field=%s", failedStep, kind, field)
	case domain.Faulted:
		s.log.Errorf(ctx, "parcel faulted step=%s err=%v", failedStep, err)
	}
	metrics.ObserveOutcome(outcome)

	return outcome
}

// HandleMessage — проверка запроса, пришедшего из Kafka (raw JSON).
// Невалидный JSON и отклонённые запросы оборачивают domain.ErrInvalidRequest,
// сбои — domain.ErrInternal.
func (s *ParcelService) HandleMessage(ctx context.Context, raw []byte) error {
	req, err := DecodeRequest(bytes.NewReader(raw))
	if err != nil {
		s.log.Warnf(ctx, "invalid json err=%v", err)
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	outcome := s.Validate(ctx, req)
	if outcome.Kind == domain.Accepted {
		return nil
	}
	return outcome.Err
}

// DecodeRequest — разбор JSON тела в RawRequest. Числа остаются json.Number,
// чтобы нормализатор видел их в исходной записи.
func DecodeRequest(r io.Reader) (domain.RawRequest, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var req domain.RawRequest
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	// Убеждаемся, что после объекта нет лишних данных.
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	if req == nil {
		req = domain.RawRequest{}
	}
	return req, nil
}

// ------шаги конвейера------

func (s *ParcelService) checkGroups(_ context.Context, st *parcelState) error {
	groups, err := validate.ExtractGroups(st.raw)
	if err != nil {
		return err
	}
	st.groups = groups
	return nil
}

func (s *ParcelService) checkProductFields(_ context.Context, st *parcelState) error {
	product, err := validate.ExtractProduct(st.groups.Product)
	if err != nil {
		return err
	}
	st.product = product
	return nil
}

func (s *ParcelService) checkPaymentFields(_ context.Context, st *parcelState) error {
	payment, err := validate.ExtractPaymentCondition(st.groups.PaymentCondition)
	if err != nil {
		return err
	}
	st.payment = payment
	return nil
}

func (s *ParcelService) parseProduct(_ context.Context, st *parcelState) error {
	parsed, err := validate.ParseProduct(st.product)
	if err != nil {
		return err
	}
	st.parsedProduct = parsed
	return nil
}

func (s *ParcelService) parsePayment(_ context.Context, st *parcelState) error {
	parsed, err := validate.ParsePaymentCondition(st.payment)
	if err != nil {
		return err
	}
	st.parsedPayment = parsed
	return nil
}

// loadRecord — единственный вызов справочника; сбой превращается в ErrInternal.
func (s *ParcelService) loadRecord(ctx context.Context, st *parcelState) error {
	res, err := s.lookup.Load(ctx, st.parsedProduct.Code)
	if err != nil {
		return fmt.Errorf("%w: product lookup: %w", domain.ErrInternal, err)
	}
	record, found := res.Record()
	if !found {
		return domain.NewNotFoundError(domain.GroupProduct)
	}
	st.record = record
	return nil
}

func (s *ParcelService) compare(_ context.Context, st *parcelState) error {
	return validate.Compare(st.parsedProduct, st.record)
}
