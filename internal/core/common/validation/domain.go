package validation

import (
	"fmt"
	"strconv"
	"time"

	errors "github.com/frahmantamala/enterprise-admin/internal"
	"github.com/shopspring/decimal"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
	TimeLayout      = "15:04:05"
)

var maxHours = decimal.NewFromInt(24)

// ParseDate parses YYYY-MM-DD into UTC midnight.
func ParseDate(field, value string) (time.Time, *errors.AppError) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, errors.NewValidationFieldError(field,
			"invalid date format, expected YYYY-MM-DD", errors.ErrCodeInvalidDate)
	}
	return t, nil
}

// DateOf truncates t to its calendar day, expressed as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PositiveAmount parses a money amount rounded to two decimals. The
// rounded value must be greater than zero.
func PositiveAmount(field string, n Number) (decimal.Decimal, *errors.AppError) {
	amount, err := n.Decimal()
	if err == nil {
		amount = amount.Round(2)
	}
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, errors.NewValidationFieldError(field,
			"amount must be a positive number", errors.ErrCodeInvalidAmount)
	}
	return amount, nil
}

// WorkHours parses a duration in hours rounded to two decimals. The
// rounded value must lie within (0, 24].
func WorkHours(field string, n Number) (decimal.Decimal, *errors.AppError) {
	hours, err := n.Decimal()
	if err == nil {
		hours = hours.Round(2)
	}
	if err != nil || !hours.IsPositive() || hours.GreaterThan(maxHours) {
		return decimal.Zero, errors.NewValidationFieldError(field,
			"duration must be in (0,24]", errors.ErrCodeInvalidDuration)
	}
	return hours, nil
}

// OptionalInt parses an optional integer query parameter.
func OptionalInt(field, value string) (int, bool, *errors.AppError) {
	if value == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, errors.NewValidationFieldError(field,
			fmt.Sprintf("%s must be an integer", field), errors.ErrCodeValidationFailed)
	}
	return v, true, nil
}

// Month validates a calendar month number.
func Month(field string, month int) *errors.AppError {
	if month < 1 || month > 12 {
		return errors.NewValidationFieldError(field, "month must be between 1 and 12", errors.ErrCodeInvalidPeriod)
	}
	return nil
}

// Year validates a four digit year.
func Year(field string, year int) *errors.AppError {
	if year < 1 || year > 9999 {
		return errors.NewValidationFieldError(field, "year is out of range", errors.ErrCodeInvalidPeriod)
	}
	return nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
