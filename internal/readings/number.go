package readings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var errNotWhole = errors.New("not a whole number")

// ParseWhole reads a meter index or a VND amount. Spreadsheets group digits
// with '.', ',' or spaces ("1.500.000", "1,500,000") and may append a currency
// mark; none of these carry a fractional part.
func ParseWhole(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimSuffix(clean, "₫")
	clean = strings.TrimSuffix(clean, "đ")
	clean = strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(clean)), "VND")

	clean = strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', ' ', '\u00a0':
			return -1
		}

		return r
	}, strings.TrimSpace(clean))

	if clean == "" {
		return 0, fmt.Errorf("%q: empty value", s)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, errNotWhole)
	}

	if !d.IsInteger() {
		return 0, fmt.Errorf("%q: %w", s, errNotWhole)
	}

	return d.IntPart(), nil
}
