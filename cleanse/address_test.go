package cleanse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddressFourParts(t *testing.T) {
	addr := ParseAddress("12 Oak St, Cape Town, Western Cape, South Africa")

	assert.Equal(t, "12 Oak St", addr.Street)
	assert.Equal(t, "Cape Town", addr.City)
	assert.Equal(t, "Western Cape", addr.Province)
	assert.Equal(t, "South Africa", addr.Country)
}

func TestParseAddressThreeParts(t *testing.T) {
	addr := ParseAddress("Cape Town, Western Cape, South Africa")

	assert.Equal(t, "", addr.Street)
	assert.Equal(t, "Cape Town", addr.City)
	assert.Equal(t, "Western Cape", addr.Province)
	assert.Equal(t, "South Africa", addr.Country)
}

func TestParseAddressTrailingNoise(t *testing.T) {
	addr := ParseAddress("  45 Samora Machel Ave., Harare, Harare Province, Zimbabwe, ")

	assert.Equal(t, "45 Samora Machel Ave", addr.Street)
	assert.Equal(t, "Harare", addr.City)
	assert.Equal(t, "Harare Province", addr.Province)
	assert.Equal(t, "Zimbabwe", addr.Country)
}

func TestParseAddressUnrecognizedShapes(t *testing.T) {
	for _, raw := range []string{
		"",
		"Harare",
		"Harare, Zimbabwe",
		"a, b, c, d, e",
	} {
		addr := ParseAddress(raw)
		assert.Equal(t, Address{}, addr, "input %q should yield an empty address", raw)
	}
}

func TestParseAddressIdempotentOnCleanInput(t *testing.T) {
	first := ParseAddress("12 Oak St, Cape Town, Western Cape, South Africa")
	rejoined := first.Street + ", " + first.City + ", " + first.Province + ", " + first.Country

	assert.Equal(t, first, ParseAddress(rejoined))
}
