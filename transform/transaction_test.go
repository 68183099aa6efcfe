package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

func TestTransactionProjection(t *testing.T) {
	cleaned := []models.CleanedRecord{
		{
			Fields: models.Record{
				"transaction_id":   "TXN001",
				"transaction_date": "2023-08-01",
				"account_id":       "ACC001",
				"account_number":   "100200300",
				"amount":           150.51,
				"currency":         "USD",
				"transaction_type": "DEPOSIT",
				"channel":          "BRANCH",
			},
			Flags: models.FlagSet{},
		},
	}

	projector := NewTransactionProjector(utils.NewETLLogger(false))
	facts := projector.Project(cleaned)
	require.Len(t, facts, 1)

	fact := facts[0]
	assert.Equal(t, "TXN001", fact.TransactionID)
	assert.Equal(t, "ACC001", fact.AccountID)
	assert.Equal(t, time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC), fact.TransactionDate)
	assert.InDelta(t, 150.51, fact.Amount, 1e-9)
	assert.Equal(t, "", fact.EWalletProvider)
}
