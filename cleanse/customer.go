package cleanse

import (
	"strings"
	"time"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// CustomerCleanser turns staged customer rows into cleaned wide records:
// normalized fields, parsed address sub-fields and the per-record flag
// set. The transform is cardinality-preserving: one cleaned record per
// staged row, no drops.
type CustomerCleanser struct {
	logger  *utils.ETLLogger
	catalog Catalog
}

// NewCustomerCleanser creates a new CustomerCleanser.
func NewCustomerCleanser(logger *utils.ETLLogger) *CustomerCleanser {
	return &CustomerCleanser{
		logger:  logger,
		catalog: CustomerCatalog(),
	}
}

// Cleanse normalizes and validates one batch of staged customer records.
func (c *CustomerCleanser) Cleanse(staged []models.Record) []models.CleanedRecord {
	startTime := time.Now()
	cleaned := make([]models.CleanedRecord, 0, len(staged))

	for _, raw := range staged {
		rec := c.normalize(raw)
		flags := c.catalog.Evaluate(rec, &RuleContext{})
		cleaned = append(cleaned, models.CleanedRecord{Fields: rec, Flags: flags})
	}

	c.logger.LogStageComplete("cleanse-customers", len(cleaned), time.Since(startTime))
	return cleaned
}

// normalize applies the per-field canonicalization of the customer record
// and decomposes the address fields. The original birth date is kept in a
// shadow field so the invalid_birth_date rule can see it.
func (c *CustomerCleanser) normalize(raw models.Record) models.Record {
	rec := raw.Clone()

	for _, field := range []string{
		"customer_id", "customer_type", "gender", "marital_status",
		"id_type", "visa_type", "preferred_contact_method", "occupation",
		"industry",
	} {
		rec.Set(field, TrimUpper(rec.Str(field)))
	}
	for _, field := range []string{
		"first_name", "last_name", "company_name", "next_of_kin",
		"employer_name", "registration_number", "phone_number",
	} {
		rec.Set(field, strings.TrimSpace(rec.Str(field)))
	}

	rec.Set("citizenship", CorrectCitizenship(rec.Str("citizenship")))
	rec.Set("email", RepairEmail(rec.Str("email")))

	if birth, ok := raw.Date("birth_date"); ok {
		rec.Set(rawBirthDateField, birth)
		if entry, hasEntry := raw.Date("entry_date"); hasEntry {
			rec.Set("birth_date", CorrectBirthDate(birth, entry))
		}
	}

	if turnover, ok := rec.Float("annual_turnover"); ok {
		rec.Set("annual_turnover", Round2(AbsTurnover(turnover)))
	}

	c.parseAddressInto(rec, "residential_address", "residential")
	c.parseAddressInto(rec, "commercial_address", "commercial")

	return rec
}

func (c *CustomerCleanser) parseAddressInto(rec models.Record, field, prefix string) {
	addr := ParseAddress(rec.Str(field))
	rec.Set(prefix+"_street", addr.Street)
	rec.Set(prefix+"_city", addr.City)
	rec.Set(prefix+"_province", addr.Province)
	rec.Set(prefix+"_country", addr.Country)
}
