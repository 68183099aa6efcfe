package load

import (
	"database/sql"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// LoadManager owns the referential load into the mart database. Subject
// areas load in dependency order (customers, then accounts, then
// transactions), each inside its own atomic transaction. A failure in one
// subject area aborts its transaction and stops the sequence; already
// committed subject areas stay visible, uncommitted ones keep their
// previous batch.
type LoadManager struct {
	db                *sql.DB
	logger            *utils.ETLLogger
	customerLoader    *CustomerLoader
	accountLoader     *AccountLoader
	transactionLoader *TransactionLoader
}

// NewLoadManager creates a new LoadManager.
func NewLoadManager(db *sql.DB, logger *utils.ETLLogger) *LoadManager {
	return &LoadManager{
		db:                db,
		logger:            logger,
		customerLoader:    NewCustomerLoader(db, logger),
		accountLoader:     NewAccountLoader(db, logger),
		transactionLoader: NewTransactionLoader(db, logger),
	}
}

// EnsureSchema creates any missing target tables.
func (m *LoadManager) EnsureSchema() error {
	return CreateNormalizedSchema(m.db, m.logger)
}

// LoadCustomers loads the customer subject area.
func (m *LoadManager) LoadCustomers(set *models.CustomerSet) (int, error) {
	return m.customerLoader.Load(set)
}

// LoadAccounts loads the account subject area.
func (m *LoadManager) LoadAccounts(set *models.AccountSet) (int, error) {
	return m.accountLoader.Load(set)
}

// LoadTransactions loads the transaction facts.
func (m *LoadManager) LoadTransactions(transactions []models.Transaction) (int, error) {
	return m.transactionLoader.Load(transactions)
}
