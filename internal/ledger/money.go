package ledger

import (
	"strconv"
	"strings"

	"github.com/govalues/money"

	"github.com/nlazarte/libromayor/internal/errs"
)

// Zero returns a zero amount in the given currency.
func Zero(currency string) money.Amount {
	z, _ := money.NewAmountFromMinorUnits(currency, 0)
	return z
}

// FromMinor builds an amount from minor units in the given currency.
func FromMinor(currency string, units int64) money.Amount {
	a, _ := money.NewAmountFromMinorUnits(currency, units)
	return a
}

// Minor extracts the minor units of an amount.
func Minor(a money.Amount) int64 {
	units, _ := a.MinorUnits()
	return units
}

// MinorString formats minor units as a plain two-decimal number, e.g. "1000.00".
func MinorString(units int64) string {
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	return sign + strconv.FormatInt(units/100, 10) + "." + pad2(units%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// ParseMinor parses a plain decimal string with at most two fraction digits
// into minor units. The third fraction digit, if present, rounds half-up.
// Negative values are rejected; validation of zero is left to callers.
func ParseMinor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, errs.ErrInvalidAmount
	}
	intPart, fracPart, _ := strings.Cut(strings.ReplaceAll(s, ",", "."), ".")
	if intPart == "" {
		intPart = "0"
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, errs.ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, errs.ErrInvalidAmount
	}
	units := iv * 100
	if fracPart != "" {
		if strings.Contains(fracPart, ".") {
			return 0, errs.ErrInvalidAmount
		}
		for _, r := range fracPart {
			if r < '0' || r > '9' {
				return 0, errs.ErrInvalidAmount
			}
		}
		frac := int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
		}
		if len(fracPart) > 2 && fracPart[2] >= '5' {
			frac++
		}
		units += frac
	}
	return units, nil
}
