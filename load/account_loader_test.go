package load

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

var accountClearOrder = []string{
	"account_branch", "account_type", "account_status", "account_documents",
	"joint_account", "account_product", "account_card", "account_beneficiary",
	"accounts",
}

func accountTestSet() *models.AccountSet {
	return &models.AccountSet{
		Accounts: []models.Account{{
			AccountID:             "ACC001",
			AccountNumber:         "100200300",
			CustomerID:            "CUST001",
			Currency:              "USD",
			OpeningDate:           time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC),
			ApprovalDate:          time.Date(2023, 7, 3, 0, 0, 0, 0, time.UTC),
			ExpectedMonthlyAmount: 12500,
		}},
	}
}

func expectAccountReplace(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	for _, table := range accountClearOrder {
		mock.ExpectExec("DELETE FROM " + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	insert := mock.ExpectPrepare("INSERT INTO accounts")
	insert.ExpectExec().
		WithArgs("ACC001", "100200300", "CUST001", "USD",
			time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 7, 3, 0, 0, 0, 0, time.UTC),
			12500.0, "", 0).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectCommit()
}

func TestAccountLoadReplacesSubjectArea(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectAccountReplace(mock)
	mock.ExpectQuery("SELECT account_number, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"account_number", "COUNT(*)"}))

	loader := NewAccountLoader(db, utils.NewETLLogger(false))
	count, err := loader.Load(accountTestSet())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountLoadWarnsOnSharedAccountNumbers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectAccountReplace(mock)
	mock.ExpectQuery("SELECT account_number, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"account_number", "COUNT(*)"}).
			AddRow("100200300", 2))

	loader := NewAccountLoader(db, utils.NewETLLogger(false))

	// The advisory check runs after commit: duplicates warn, never fail.
	count, err := loader.Load(accountTestSet())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
