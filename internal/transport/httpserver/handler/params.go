package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"budget-app-go/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func parseDateRequired(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return time.Parse(dateLayout, value)
}

func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

// parseIDParam accepts any unsigned integer; an id that matches no row is
// the lookup's problem, not a malformed request.
func parseIDParam(value string) (uint, error) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id")
	}
	return uint(parsed), nil
}

func parseUintParam(value string) (*uint, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid id")
	}
	id := uint(parsed)
	return &id, nil
}

func parseDecimalParam(value string) (*decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseTypeParam(value string) (*ledger.EntryType, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	entryType := ledger.EntryType(value)
	if !entryType.Valid() {
		return nil, fmt.Errorf("invalid type")
	}
	return &entryType, nil
}

// optionalString distinguishes an absent JSON field from an explicit null
// in partial updates.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}

type optionalRef struct {
	Set   bool
	Value *uint
}

func (o *optionalRef) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var value uint
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}
