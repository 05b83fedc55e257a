package provider

import (
	"regexp"
	"strconv"
	"strings"
)

// priceDigits matches the first run of digits with an optional decimal
// part, after thousands separators have been stripped.
var priceDigits = regexp.MustCompile(`[0-9]+\.?[0-9]*`)

// ExtractPrice extracts a numeric price from a provider value, which may
// be a number or a string carrying currency symbols and thousands
// separators (e.g. "₹1,999"). The boolean result is false when no digits
// are found; a price-less item is not a usable result.
func ExtractPrice(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return extractPriceString(v)
	default:
		return 0, false
	}
}

func extractPriceString(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}

	cleaned := strings.ReplaceAll(s, ",", "")
	match := priceDigits.FindString(cleaned)
	if match == "" {
		return 0, false
	}

	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}

	return price, true
}
