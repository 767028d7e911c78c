package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePriceCents converts a decimal price string ("123.34") into integer
// cents. The price must be positive and carry at most 2 fractional digits.
func ParsePriceCents(price string) (int64, error) {
	s := strings.TrimSpace(price)
	if s == "" {
		return 0, fmt.Errorf("price is empty")
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("price must be an unsigned decimal")
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole = s[:i]
		frac = s[i+1:]
		if frac == "" {
			return 0, fmt.Errorf("invalid price %q", price)
		}
	}
	if whole == "" || len(frac) > 2 {
		return 0, fmt.Errorf("price must have at most 2 fractional digits")
	}

	dollars, err := strconv.ParseUint(whole, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %v", price, err)
	}

	cents := uint64(0)
	if frac != "" {
		c, err := strconv.ParseUint(frac, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid price %q: %v", price, err)
		}
		if len(frac) == 1 {
			c *= 10
		}
		cents = c
	}

	total := int64(dollars*100 + cents)
	if total <= 0 {
		return 0, fmt.Errorf("price must be positive")
	}
	return total, nil
}

// FormatPriceCents renders integer cents as a decimal string ("123.34").
func FormatPriceCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
