package cleanse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

func knownAccountBatch() []models.CleanedRecord {
	return []models.CleanedRecord{
		{
			Fields: models.Record{"account_id": "ACC001", "account_number": "100200300"},
			Flags:  models.FlagSet{},
		},
	}
}

func baseTransaction() models.Record {
	return models.Record{
		"transaction_id":   "TXN001",
		"account_number":   "100200300",
		"transaction_date": "2023-08-01",
		"amount":           150.509,
		"currency":         "usd",
		"transaction_type": "Deposit",
	}
}

func cleanseTransactions(t *testing.T, staged []models.Record) []models.CleanedRecord {
	t.Helper()
	cleanser := NewTransactionCleanser(utils.NewETLLogger(false))
	return cleanser.Cleanse(staged, knownAccountBatch())
}

func TestTransactionJoinsAndRounds(t *testing.T) {
	cleaned := cleanseTransactions(t, []models.Record{baseTransaction()})
	require.Len(t, cleaned, 1)

	assert.Equal(t, "ACC001", cleaned[0].Fields.Str("account_id"))
	assert.Equal(t, "USD", cleaned[0].Fields.Str("currency"))
	assert.Equal(t, "DEPOSIT", cleaned[0].Fields.Str("transaction_type"))

	amount, ok := cleaned[0].Fields.Float("amount")
	require.True(t, ok)
	assert.InDelta(t, 150.51, amount, 1e-9)
}

func TestTransactionUnknownAccountDropped(t *testing.T) {
	rec := baseTransaction()
	rec["account_number"] = "999999999"

	cleaned := cleanseTransactions(t, []models.Record{rec})
	assert.Empty(t, cleaned)
}

func TestTransactionZeroOrMissingAmountDropped(t *testing.T) {
	zero := baseTransaction()
	zero["amount"] = 0.0
	missing := baseTransaction()
	delete(missing, "amount")

	cleaned := cleanseTransactions(t, []models.Record{zero, missing})
	assert.Empty(t, cleaned)
}

func TestTransactionExactDuplicatesDropped(t *testing.T) {
	cleaned := cleanseTransactions(t, []models.Record{baseTransaction(), baseTransaction()})
	assert.Len(t, cleaned, 1)
}

func TestTransactionDistinctRowsKept(t *testing.T) {
	second := baseTransaction()
	second["transaction_id"] = "TXN002"

	cleaned := cleanseTransactions(t, []models.Record{baseTransaction(), second})
	assert.Len(t, cleaned, 2)
}
