package payment

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Digits strips everything but 0-9 from s.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Luhn reports whether number is a 12 to 19 digit card number that passes
// the mod-10 check. Separators are ignored.
func Luhn(number string) bool {
	return validate.Var(Digits(number), "credit_card") == nil
}

// ParseExpiry reads MM/YY (also MM/YYYY) as month and full year.
func ParseExpiry(s string) (month, year int, ok bool) {
	mm, yy, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		return 0, 0, false
	}
	mm, yy = strings.TrimSpace(mm), strings.TrimSpace(yy)
	if !allDigits(mm) || !allDigits(yy) || len(mm) < 1 || len(mm) > 2 {
		return 0, 0, false
	}
	month, _ = strconv.Atoi(mm)
	year, _ = strconv.Atoi(yy)
	switch len(yy) {
	case 2:
		year += 2000
	case 4:
	default:
		return 0, 0, false
	}
	if month < 1 || month > 12 {
		return 0, 0, false
	}
	return month, year, true
}

// Expired reports whether a card expiring at month/year can no longer be
// used at now. Cards are good through the last day of their expiry month.
func Expired(month, year int, now time.Time) bool {
	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location())
	return !now.Before(end)
}

// ValidCVV accepts 3 or 4 digits.
func ValidCVV(s string) bool {
	s = strings.TrimSpace(s)
	return (len(s) == 3 || len(s) == 4) && allDigits(s)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
