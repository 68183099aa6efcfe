package cleanse

import (
	"strings"
	"time"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// TransactionCleanser turns staged transaction rows into cleaned records.
// Unlike the other cleansers it is not cardinality-preserving: a cleaned
// transaction must join to a known account, must carry a nonzero amount,
// and exact duplicate rows are dropped. The two early feeds lacking
// ewallet/loan-type columns arrive with those fields NULL; they normalize
// to empty strings like every other absent string field.
type TransactionCleanser struct {
	logger *utils.ETLLogger
}

// NewTransactionCleanser creates a new TransactionCleanser.
func NewTransactionCleanser(logger *utils.ETLLogger) *TransactionCleanser {
	return &TransactionCleanser{logger: logger}
}

// Cleanse normalizes one batch of staged transaction records. accounts is
// the output of the account cleansing stage; the sending account number
// must resolve against it. Unresolved receiving accounts are tolerated
// (left as-is) so the row stays recoverable.
func (t *TransactionCleanser) Cleanse(staged []models.Record, accounts []models.CleanedRecord) []models.CleanedRecord {
	startTime := time.Now()

	knownAccounts := make(map[string]string, len(accounts))
	for _, account := range accounts {
		number := account.Fields.Str("account_number")
		if number != "" {
			knownAccounts[number] = account.Fields.Str("account_id")
		}
	}

	cleaned := make([]models.CleanedRecord, 0, len(staged))
	seen := make(map[string]bool, len(staged))
	dropped := 0

	for _, raw := range staged {
		rec := t.normalize(raw)

		accountID, joined := knownAccounts[rec.Str("account_number")]
		amount, hasAmount := rec.Float("amount")
		if !joined || !hasAmount || amount == 0 {
			dropped++
			continue
		}
		rec.Set("account_id", accountID)
		rec.Set("amount", Round2(amount))

		row := models.CleanedRecord{Fields: rec, Flags: models.FlagSet{}}
		fingerprint := row.Fingerprint()
		if seen[fingerprint] {
			dropped++
			continue
		}
		seen[fingerprint] = true
		cleaned = append(cleaned, row)
	}

	if dropped > 0 {
		t.logger.Debug("cleanse-transactions dropped %d rows (unknown account, zero amount or duplicate)", dropped)
	}
	t.logger.LogStageComplete("cleanse-transactions", len(cleaned), time.Since(startTime))
	return cleaned
}

func (t *TransactionCleanser) normalize(raw models.Record) models.Record {
	rec := raw.Clone()

	for _, field := range []string{
		"transaction_id", "account_number", "receiving_account_number",
		"currency", "transaction_type", "channel",
	} {
		rec.Set(field, TrimUpper(rec.Str(field)))
	}
	for _, field := range []string{"ewallet_provider", "loan_type", "description"} {
		rec.Set(field, strings.TrimSpace(rec.Str(field)))
	}

	return rec
}
