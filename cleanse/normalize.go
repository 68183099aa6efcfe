package cleanse

import (
	"math"
	"strings"
	"time"
)

// Field-level normalization helpers. Every function here is deterministic
// and total: malformed input comes back unchanged or as a zero value,
// never as an error. Data-quality problems are the rule catalog's job.

// citizenshipCorrections maps known-bad citizenship codes from the source
// extracts to their ISO 3166-1 alpha-3 values. The 2023 customer extract
// consistently carries ZIM for Zimbabwean customers.
var citizenshipCorrections = map[string]string{
	"ZIM": "ZWE",
}

// placeholderDomain is the synthetic domain used by the test-data
// generator. Addresses that contain it but lost their "@" are repairable.
const placeholderDomain = "example.com"

// TrimUpper canonicalizes an identifier or code field.
func TrimUpper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// CorrectCitizenship trims, upper-cases and applies the known-value
// corrections to a citizenship code.
func CorrectCitizenship(code string) string {
	code = TrimUpper(code)
	if corrected, ok := citizenshipCorrections[code]; ok {
		return corrected
	}
	return code
}

// CorrectBirthDate repairs two-digit-year entry errors. A birth date after
// the entry date is assumed to have landed a century late and is moved
// back 100 years; a birth date more than 100 years before the entry date
// is moved forward 100 years. Anything else is left unchanged.
//
// This correction always runs. The invalid_birth_date flag is computed
// from the original value, never from the corrected one.
func CorrectBirthDate(birthDate, entryDate time.Time) time.Time {
	if birthDate.IsZero() || entryDate.IsZero() {
		return birthDate
	}
	if birthDate.After(entryDate) {
		return birthDate.AddDate(-100, 0, 0)
	}
	if birthDate.Before(entryDate.AddDate(-100, 0, 0)) {
		return birthDate.AddDate(100, 0, 0)
	}
	return birthDate
}

// RepairEmail inserts a missing "@" in front of the known placeholder
// domain: "john.example.com" becomes "john@example.com". Addresses that
// already contain "@", or that do not mention the placeholder domain,
// come back unchanged.
func RepairEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" || strings.Contains(email, "@") {
		return email
	}
	idx := strings.Index(email, placeholderDomain)
	if idx <= 0 {
		return email
	}
	local := strings.TrimSuffix(email[:idx], ".")
	if local == "" {
		return email
	}
	return local + "@" + email[idx:]
}

// Round2 rounds a money amount to two decimals.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// AbsTurnover normalizes a turnover figure to its absolute value. Some
// source periods export turnover with a refund-style negative sign.
func AbsTurnover(turnover float64) float64 {
	return math.Abs(turnover)
}
