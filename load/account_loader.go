package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// AccountLoader replaces the account subject area wholesale inside one
// transaction, mirroring the customer loader.
type AccountLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewAccountLoader creates a new AccountLoader.
func NewAccountLoader(db *sql.DB, logger *utils.ETLLogger) *AccountLoader {
	return &AccountLoader{db: db, logger: logger}
}

// Load writes one batch's account entity set and returns the number of
// fact rows written.
func (l *AccountLoader) Load(set *models.AccountSet) (int, error) {
	startTime := time.Now()
	l.logger.Info("Loading account subject area (%d facts)", len(set.Accounts))

	tx, err := l.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning account load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{
		"account_branch", "account_type", "account_status", "account_documents",
		"joint_account", "account_product", "account_card", "account_beneficiary",
		"accounts",
	} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return 0, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertRows(tx, `
		INSERT INTO accounts
		(account_id, account_number, customer_id, currency, opening_date,
		approval_date, expected_monthly_amount, dq_flags, dq_flag_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		set.Accounts, func(row models.Account) []any {
			return []any{row.AccountID, row.AccountNumber, row.CustomerID,
				row.Currency, nullDate(row.OpeningDate), nullDate(row.ApprovalDate),
				row.ExpectedMonthlyAmount, row.DQFlags, row.DQFlagCount}
		}); err != nil {
		return 0, err
	}

	if err := l.insertDimensions(tx, set); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing account load: %w", err)
	}

	l.reportDuplicateAccountNumbers()

	l.logger.Info("Account subject area loaded: %d facts (%v)",
		len(set.Accounts), time.Since(startTime))
	return len(set.Accounts), nil
}

// reportDuplicateAccountNumbers re-checks the loaded fact table for shared
// account numbers. Duplicates are expected (the cleansing stage only flags
// them), so this is advisory output for operators, not a load failure.
func (l *AccountLoader) reportDuplicateAccountNumbers() {
	rows, err := l.db.Query(`
		SELECT account_number, COUNT(*)
		FROM accounts
		GROUP BY account_number
		HAVING COUNT(*) > 1`)
	if err != nil {
		l.logger.Error("checking loaded account numbers: %v", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var number string
		var count int
		if err := rows.Scan(&number, &count); err != nil {
			l.logger.Error("scanning duplicate account number row: %v", err)
			return
		}
		l.logger.Warn("Account number %s loaded %d times", number, count)
	}
	if err := rows.Err(); err != nil {
		l.logger.Error("iterating duplicate account numbers: %v", err)
	}
}

func (l *AccountLoader) insertDimensions(tx *sql.Tx, set *models.AccountSet) error {
	if err := insertRows(tx, `
		INSERT INTO account_branch (account_id, branch_code, branch_name)
		VALUES (?, ?, ?)`,
		set.Branches, func(row models.AccountBranch) []any {
			return []any{row.AccountID, row.BranchCode, row.BranchName}
		}); err != nil {
		return err
	}

	if err := insertRows(tx, `
		INSERT INTO account_type (account_id, type_code, value_segment)
		VALUES (?, ?, ?)`,
		set.Types, func(row models.AccountType) []any {
			return []any{row.AccountID, row.TypeCode, row.ValueSegment}
		}); err != nil {
		return err
	}

	if err := insertRows(tx, `
		INSERT INTO account_status
		(account_id, status, status_change_date, closure_date, is_active,
		online_banking_activated, online_banking_activation_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		set.Statuses, func(row models.AccountStatus) []any {
			return []any{row.AccountID, row.Status, nullDate(row.StatusChangeDate),
				nullDate(row.ClosureDate), row.IsActive, row.OnlineBankingActivated,
				nullDate(row.OnlineBankingActivationDate)}
		}); err != nil {
		return err
	}

	if err := insertRows(tx, `
		INSERT INTO account_documents
		(account_id, id_document_provided, proof_of_address_provided, source_of_funds_declared)
		VALUES (?, ?, ?, ?)`,
		set.Documents, func(row models.AccountDocuments) []any {
			return []any{row.AccountID, row.IDDocumentProvided,
				row.ProofOfAddressProvided, row.SourceOfFundsDeclared}
		}); err != nil {
		return err
	}

	if err := insertRows(tx, `
		INSERT INTO joint_account (account_id, joint_customer_id)
		VALUES (?, ?)`,
		set.JointHolders, func(row models.JointAccount) []any {
			return []any{row.AccountID, row.JointCustomerID}
		}); err != nil {
		return err
	}

	if err := insertRows(tx, `
		INSERT INTO account_product (account_id, product_code)
		VALUES (?, ?)`,
		set.Products, func(row models.AccountProduct) []any {
			return []any{row.AccountID, row.ProductCode}
		}); err != nil {
		return err
	}

	if err := insertRows(tx, `
		INSERT INTO account_card
		(account_id, card_number, card_issue_date, card_expiry_date, card_status)
		VALUES (?, ?, ?, ?, ?)`,
		set.Cards, func(row models.AccountCard) []any {
			return []any{row.AccountID, row.CardNumber, nullDate(row.CardIssueDate),
				nullDate(row.CardExpiryDate), row.CardStatus}
		}); err != nil {
		return err
	}

	return insertRows(tx, `
		INSERT INTO account_beneficiary (account_id, name, relationship, percentage)
		VALUES (?, ?, ?, ?)`,
		set.Beneficiaries, func(row models.AccountBeneficiary) []any {
			return []any{row.AccountID, row.Name, row.Relationship,
				nullPercentage(row.Percentage)}
		})
}
