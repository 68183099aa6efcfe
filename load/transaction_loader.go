package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// TransactionLoader replaces the transaction fact table wholesale. It runs
// after the account load so every fact's account reference is resolvable.
type TransactionLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewTransactionLoader creates a new TransactionLoader.
func NewTransactionLoader(db *sql.DB, logger *utils.ETLLogger) *TransactionLoader {
	return &TransactionLoader{db: db, logger: logger}
}

// Load writes one batch's transaction facts and returns the row count.
func (l *TransactionLoader) Load(transactions []models.Transaction) (int, error) {
	startTime := time.Now()
	l.logger.Info("Loading transaction facts (%d rows)", len(transactions))

	tx, err := l.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction load: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM transactions"); err != nil {
		return 0, fmt.Errorf("clearing transactions: %w", err)
	}

	if err := insertRows(tx, `
		INSERT INTO transactions
		(transaction_id, transaction_date, account_id, account_number,
		receiving_account_number, amount, currency, transaction_type,
		channel, ewallet_provider, loan_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		transactions, func(row models.Transaction) []any {
			return []any{row.TransactionID, nullDate(row.TransactionDate),
				row.AccountID, row.AccountNumber, row.ReceivingAccountNumber,
				row.Amount, row.Currency, row.TransactionType, row.Channel,
				row.EWalletProvider, row.LoanType}
		}); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction load: %w", err)
	}

	l.logger.Info("Transaction facts loaded: %d rows (%v)", len(transactions), time.Since(startTime))
	return len(transactions), nil
}
