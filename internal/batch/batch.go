// Package batch — проверка пачки запросов из файла (JSON или JSONL) без HTTP.
package batch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/internal/ports"
	"github.com/Gunvolt24/parcel_product/internal/usecase"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ParseFormat — формат из строки флага.
func ParseFormat(s string) (InputFormat, error) {
	switch f := InputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatJSON, FormatJSONL:
		return f, nil
	case "":
		return FormatAuto, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Report — итог проверки одного запроса (одна строка вывода).
type Report struct {
	Index   int    `json:"index"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// Summary — счётчики по итогам.
type Summary struct {
	Accepted int
	Rejected int
	Faulted  int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d accepted / %d rejected / %d faulted", s.Accepted, s.Rejected, s.Faulted)
}

// Total — всего проверенных запросов.
func (s Summary) Total() int { return s.Accepted + s.Rejected + s.Faulted }

func (s *Summary) add(kind domain.OutcomeKind) {
	switch kind {
	case domain.Accepted:
		s.Accepted++
	case domain.Rejected:
		s.Rejected++
	default:
		s.Faulted++
	}
}

// ValidateFile — проверяет файл как JSON или JSONL и пишет отчёт по каждому запросу в ow.
// "-" читает stdin (по умолчанию как JSONL).
func ValidateFile(ctx context.Context, validator ports.ParcelValidator, path string, format InputFormat, ow io.Writer) (Summary, error) {
	if format == FormatAuto {
		format = detectFormat(path)
	}

	var in io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return Summary{}, fmt.Errorf("open file: %w", err)
		}
		defer file.Close()
		in = file
	}

	switch format {
	case FormatJSON:
		return ValidateJSON(ctx, validator, in, ow)
	case FormatJSONL:
		return ValidateJSONLStream(ctx, validator, in, ow)
	default:
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}
}

func detectFormat(path string) InputFormat {
	if path == "-" || strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateJSON — один объект-запрос или массив запросов.
func ValidateJSON(ctx context.Context, validator ports.ParcelValidator, ir io.Reader, ow io.Writer) (Summary, error) {
	raw, err := io.ReadAll(ir)
	if err != nil {
		return Summary{}, fmt.Errorf("read input: %w", err)
	}

	payloads := []json.RawMessage{raw}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		payloads = nil
		if err := json.Unmarshal(trimmed, &payloads); err != nil {
			return Summary{}, fmt.Errorf("decode array: %w", err)
		}
	}

	var sum Summary
	enc := json.NewEncoder(ow)
	for i, p := range payloads {
		rep := validateOne(ctx, validator, i, p, &sum)
		if err := enc.Encode(rep); err != nil {
			return sum, fmt.Errorf("write report: %w", err)
		}
	}
	return sum, nil
}

// ValidateJSONLStream — читает JSONL, проверяет каждую строку и пишет отчёт.
// Пустые строки пропускаются; индекс — номер строки (с 1).
func ValidateJSONLStream(ctx context.Context, validator ports.ParcelValidator, ir io.Reader, ow io.Writer) (Summary, error) {
	var sum Summary

	scanner := bufio.NewScanner(ir)
	// запас на большие строки
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	enc := json.NewEncoder(ow)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		rep := validateOne(ctx, validator, line, lineBytes, &sum)
		if err := enc.Encode(rep); err != nil {
			return sum, fmt.Errorf("write report: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("scan: %w", err)
	}
	return sum, nil
}

func validateOne(ctx context.Context, validator ports.ParcelValidator, index int, payload []byte, sum *Summary) Report {
	req, err := usecase.DecodeRequest(bytes.NewReader(payload))
	if err != nil {
		sum.add(domain.Rejected)
		return Report{Index: index, Status: domain.Rejected.String(), Error: "invalid_json", Message: "invalid json"}
	}

	outcome := validator.Validate(ctx, req)
	sum.add(outcome.Kind)

	rep := Report{Index: index, Status: outcome.Kind.String()}
	switch outcome.Kind {
	case domain.Rejected:
		kind, field := outcome.Reason()
		rep.Error, rep.Field, rep.Message = string(kind), field, outcome.Message()
	case domain.Faulted:
		rep.Error, rep.Message = "internal", outcome.Message()
	}
	return rep
}
