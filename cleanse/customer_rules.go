package cleanse

import (
	"strings"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
)

// Field read by the invalid_birth_date rule: the cleanser snapshots the
// original (pre-correction) birth date here before normalization runs.
const rawBirthDateField = "_birth_date_raw"

var validGenders = map[string]bool{
	"M":                 true,
	"F":                 true,
	"OTHER":             true,
	"PREFER NOT TO SAY": true,
}

var kinRequiredStatuses = map[string]bool{
	"MARRIED":   true,
	"PARTNERED": true,
	"DIVORCED":  true,
	"WIDOWED":   true,
}

// CustomerCatalog builds the data-quality rule catalog for customer
// records. Rules are evaluated against the normalized record, except
// invalid_birth_date, which reads the original birth date snapshot.
// missing_preferred_contact_email and inconsistent_contact_method are
// composite: they read the email/phone validity flags computed earlier in
// the same pass and therefore must stay after them in the catalog.
func CustomerCatalog() Catalog {
	return Catalog{
		{Name: "invalid_birth_date", Eval: invalidBirthDate},
		{Name: "missing_passport_expiry", Eval: func(rec models.Record, _ *RuleContext) bool {
			return rec.Str("id_type") == "PASSPORT" && rec.IsNull("id_expiry_date")
		}},
		{Name: "expired", Eval: func(rec models.Record, _ *RuleContext) bool {
			expiry, hasExpiry := rec.Date("id_expiry_date")
			entry, hasEntry := rec.Date("entry_date")
			return hasExpiry && hasEntry && expiry.Before(entry)
		}},
		{Name: "missing_visa", Eval: func(rec models.Record, _ *RuleContext) bool {
			return rec.Str("id_type") == "PASSPORT" && rec.IsNull("visa_type")
		}},
		{Name: "missing_visa_expiry", Eval: func(rec models.Record, _ *RuleContext) bool {
			return !rec.IsNull("visa_type") && rec.IsNull("visa_expiry_date")
		}},
		{Name: "expired_visa", Eval: func(rec models.Record, _ *RuleContext) bool {
			expiry, hasExpiry := rec.Date("visa_expiry_date")
			entry, hasEntry := rec.Date("entry_date")
			return hasExpiry && hasEntry && expiry.Before(entry)
		}},
		{Name: "invalid_visa_for_id_type", Eval: func(rec models.Record, _ *RuleContext) bool {
			if rec.IsNull("visa_type") {
				return false
			}
			idType := rec.Str("id_type")
			return idType != "PASSPORT" && idType != "TRAVEL DOCUMENT"
		}},
		{Name: "invalid_employment_status", Eval: func(rec models.Record, _ *RuleContext) bool {
			return rec.Str("occupation") == "UNEMPLOYED UNSKILLED" && !rec.IsNull("employer_name")
		}},
		{Name: "invalid_gender", Eval: func(rec models.Record, _ *RuleContext) bool {
			if rec.IsNull("gender") {
				return false
			}
			return !validGenders[TrimUpper(rec.Str("gender"))]
		}},
		{Name: "invalid_email_format", Eval: func(rec models.Record, _ *RuleContext) bool {
			return !isPlausibleEmail(rec.Str("email"))
		}},
		{Name: "invalid_phone_number", Eval: func(rec models.Record, _ *RuleContext) bool {
			return len(strings.TrimSpace(rec.Str("phone_number"))) != 12
		}},
		{Name: "missing_next_of_kin", Eval: func(rec models.Record, _ *RuleContext) bool {
			return kinRequiredStatuses[rec.Str("marital_status")] && rec.IsNull("next_of_kin")
		}},
		{Name: "invalid_risk_score", Eval: func(rec models.Record, _ *RuleContext) bool {
			score, ok := rec.Float("risk_score")
			return !ok || score < 0 || score > 1
		}},
		// Composite rules below: they read flags set above.
		{Name: "missing_preferred_contact_email", Eval: func(rec models.Record, ctx *RuleContext) bool {
			return rec.Str("preferred_contact_method") == "EMAIL" &&
				(rec.IsNull("email") || ctx.Flags.Is("invalid_email_format"))
		}},
		{Name: "missing_preferred_contact_phone", Eval: func(rec models.Record, _ *RuleContext) bool {
			return rec.Str("preferred_contact_method") == "PHONE" && rec.IsNull("phone_number")
		}},
		{Name: "inconsistent_contact_method", Eval: func(rec models.Record, ctx *RuleContext) bool {
			switch rec.Str("preferred_contact_method") {
			case "EMAIL":
				return ctx.Flags.Is("invalid_email_format")
			case "PHONE":
				return ctx.Flags.Is("invalid_phone_number")
			default:
				return false
			}
		}},
	}
}

// invalidBirthDate checks the ORIGINAL birth date against
// [entry_date - 100y, entry_date - 18y]. Company records carry no birth
// date and are exempt. The birth-year correction of the normalizer runs
// regardless of this flag's outcome.
func invalidBirthDate(rec models.Record, _ *RuleContext) bool {
	if rec.Str("customer_type") == "COMPANY" {
		return false
	}
	birth, hasBirth := rec.Date(rawBirthDateField)
	if !hasBirth {
		birth, hasBirth = rec.Date("birth_date")
	}
	entry, hasEntry := rec.Date("entry_date")
	if !hasBirth || !hasEntry {
		return true
	}
	return birth.After(entry.AddDate(-18, 0, 0)) || birth.Before(entry.AddDate(-100, 0, 0))
}

// isPlausibleEmail applies the minimal shape check: at least 5 characters,
// an "@" with a non-empty local part, and a dot somewhere after the "@".
func isPlausibleEmail(email string) bool {
	email = strings.TrimSpace(email)
	if len(email) < 5 {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".")
}
