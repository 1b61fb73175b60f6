package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// NormalizePropertyID turns a property identifier into the canonical
// "properties/<digits>" resource name. Accepted inputs are a positive
// number, a numeric string, or the already-canonical form. The check is
// pure and runs before any upstream call is issued.
func NormalizePropertyID(v any) (string, error) {
	switch p := v.(type) {
	case string:
		return normalizePropertyString(p)
	case json.Number:
		return normalizePropertyString(p.String())
	case int:
		return normalizePropertyInt(int64(p))
	case int64:
		return normalizePropertyInt(p)
	case float64:
		if p != math.Trunc(p) {
			return "", invalidProperty(v)
		}
		return normalizePropertyInt(int64(p))
	default:
		return "", invalidProperty(v)
	}
}

func normalizePropertyInt(n int64) (string, error) {
	if n <= 0 {
		return "", invalidProperty(n)
	}
	return fmt.Sprintf("properties/%d", n), nil
}

func normalizePropertyString(s string) (string, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "properties/")
	if digits == "" || !isDigits(digits) {
		return "", invalidProperty(s)
	}
	return "properties/" + digits, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func invalidProperty(v any) error {
	return fmt.Errorf("invalid property ID %v: expected a number or 'properties/' followed by a number", v)
}
