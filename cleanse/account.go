package cleanse

import (
	"strings"
	"time"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// AccountCleanser turns staged account rows into cleaned wide records.
// Account validation needs two batch-level inputs: the account_number
// multiplicity across the whole batch (duplicate check) and the related
// customer's entry date, looked up in the already-cleansed customer batch.
type AccountCleanser struct {
	logger  *utils.ETLLogger
	catalog Catalog
}

// NewAccountCleanser creates a new AccountCleanser.
func NewAccountCleanser(logger *utils.ETLLogger) *AccountCleanser {
	return &AccountCleanser{
		logger:  logger,
		catalog: AccountCatalog(),
	}
}

// Cleanse normalizes and validates one batch of staged account records.
// customers is the output of the customer cleansing stage; it feeds the
// opening_before_customer_entry rule.
func (a *AccountCleanser) Cleanse(staged []models.Record, customers []models.CleanedRecord) []models.CleanedRecord {
	startTime := time.Now()

	// Per-field rule evaluation could run per record in parallel, but the
	// duplicate check needs this full-batch scan first.
	normalized := make([]models.Record, 0, len(staged))
	numberCounts := make(map[string]int, len(staged))
	for _, raw := range staged {
		rec := a.normalize(raw)
		normalized = append(normalized, rec)
		if number := rec.Str("account_number"); number != "" {
			numberCounts[number]++
		}
	}

	entryDates := make(map[string]time.Time, len(customers))
	for _, customer := range customers {
		if entry, ok := customer.Fields.Date("entry_date"); ok {
			entryDates[customer.Fields.Str("customer_id")] = entry
		}
	}

	cleaned := make([]models.CleanedRecord, 0, len(normalized))
	for _, rec := range normalized {
		ctx := &RuleContext{
			CustomerEntryDates:  entryDates,
			AccountNumberCounts: numberCounts,
		}
		flags := a.catalog.Evaluate(rec, ctx)
		cleaned = append(cleaned, models.CleanedRecord{Fields: rec, Flags: flags})
	}

	a.logger.LogStageComplete("cleanse-accounts", len(cleaned), time.Since(startTime))
	return cleaned
}

func (a *AccountCleanser) normalize(raw models.Record) models.Record {
	rec := raw.Clone()

	for _, field := range []string{
		"account_id", "account_number", "customer_id", "account_type",
		"branch_code", "status", "currency",
	} {
		rec.Set(field, TrimUpper(rec.Str(field)))
	}
	for _, field := range []string{"branch_name", "card_number"} {
		rec.Set(field, strings.TrimSpace(rec.Str(field)))
	}

	if expected, ok := rec.Float("expected_amount"); ok {
		rec.Set("expected_amount", Round2(expected))
	}

	return rec
}
