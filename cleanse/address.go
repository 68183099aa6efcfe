package cleanse

import (
	"strings"
)

// Address is the structured form of a free-text address field.
type Address struct {
	Street   string
	City     string
	Province string
	Country  string
}

// ParseAddress tokenizes a comma-separated address into its components.
//
// The raw value is cleaned first: trailing comma stripped, all periods
// stripped, whitespace trimmed. Components are then read right to left:
// the last is always the country, the second-to-last the province. A
// four-part address carries "street, city, province, country"; a
// three-part address carries "city, province, country" with no street.
// Any other shape yields an empty Address.
//
// Residential and commercial address fields go through this identically.
func ParseAddress(raw string) Address {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, ",")
	raw = strings.ReplaceAll(raw, ".", "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Address{}
	}

	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 4:
		return Address{
			Street:   parts[0],
			City:     parts[1],
			Province: parts[2],
			Country:  parts[3],
		}
	case 3:
		return Address{
			City:     parts[0],
			Province: parts[1],
			Country:  parts[2],
		}
	default:
		return Address{}
	}
}
