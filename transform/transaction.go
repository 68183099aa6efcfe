package transform

import (
	"time"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// TransactionProjector maps cleaned transaction records onto transaction
// fact rows. Cleansing already enforced the account join, the nonzero
// amount and full-row deduplication, so this is a straight projection.
type TransactionProjector struct {
	logger *utils.ETLLogger
}

// NewTransactionProjector creates a new TransactionProjector.
func NewTransactionProjector(logger *utils.ETLLogger) *TransactionProjector {
	return &TransactionProjector{logger: logger}
}

// Project builds the transaction fact rows for one batch.
func (p *TransactionProjector) Project(transactions []models.CleanedRecord) []models.Transaction {
	startTime := time.Now()
	facts := make([]models.Transaction, 0, len(transactions))

	for _, transaction := range transactions {
		rec := transaction.Fields
		date, _ := rec.Date("transaction_date")
		amount, _ := rec.Float("amount")
		facts = append(facts, models.Transaction{
			TransactionID:          rec.Str("transaction_id"),
			TransactionDate:        date,
			AccountID:              rec.Str("account_id"),
			AccountNumber:          rec.Str("account_number"),
			ReceivingAccountNumber: rec.Str("receiving_account_number"),
			Amount:                 amount,
			Currency:               rec.Str("currency"),
			TransactionType:        rec.Str("transaction_type"),
			Channel:                rec.Str("channel"),
			EWalletProvider:        rec.Str("ewallet_provider"),
			LoanType:               rec.Str("loan_type"),
		})
	}

	p.logger.Info("Projected %d transaction facts (%v)", len(facts), time.Since(startTime))
	return facts
}
