package planning

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	msgRequired = "This field is required."
	dateLayout  = "2006-01-02"
)

func requireText(errs shared.ValidationErrors, field, value string, maxLen int) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, msgRequired)
		return
	}
	limitText(errs, field, value, maxLen)
}

func limitText(errs shared.ValidationErrors, field, value string, maxLen int) {
	if maxLen > 0 && len(value) > maxLen {
		errs.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", maxLen))
	}
}

func optionalEmail(errs shared.ValidationErrors, field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		errs.Add(field, "Enter a valid email address.")
	}
}

func nonNegativeMoney(errs shared.ValidationErrors, field string, value decimal.Decimal, maxDigits int) {
	if value.IsNegative() {
		errs.Add(field, "Ensure this value is greater than or equal to 0.")
		return
	}
	if value.Exponent() < -2 && !value.Equal(value.Round(2)) {
		errs.Add(field, "Ensure that there are no more than 2 decimal places.")
	}
	limit := decimal.New(1, int32(maxDigits-2))
	if value.GreaterThanOrEqual(limit) {
		errs.Add(field, fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxDigits))
	}
}

func choice[T ~string](errs shared.ValidationErrors, field string, value T, valid func(T) bool) {
	if value == "" {
		errs.Add(field, msgRequired)
		return
	}
	if !valid(value) {
		errs.Add(field, fmt.Sprintf("\"%s\" is not a valid choice.", value))
	}
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS and returns the canonical HH:MM:SS form.
func ParseTimeOfDay(value string) (string, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("invalid time of day %q", value)
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
