package cleanse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

func baseAccount() models.Record {
	return models.Record{
		"account_id":     "ACC001",
		"account_number": "100200300",
		"customer_id":    "CUST001",
		"account_type":   "Savings",
		"opening_date":   "2023-07-01",
		"approval_date":  "2023-07-03",
		"currency":       "usd",
	}
}

func cleanseAccounts(t *testing.T, accounts []models.Record, customers []models.CleanedRecord) []models.CleanedRecord {
	t.Helper()
	cleanser := NewAccountCleanser(utils.NewETLLogger(false))
	return cleanser.Cleanse(accounts, customers)
}

func TestDuplicateAccountNumberIsBatchGlobal(t *testing.T) {
	first := baseAccount()
	second := baseAccount()
	second["account_id"] = "ACC002"
	unique := baseAccount()
	unique["account_id"] = "ACC003"
	unique["account_number"] = "999888777"

	cleaned := cleanseAccounts(t, []models.Record{first, second, unique}, nil)
	require.Len(t, cleaned, 3)

	assert.True(t, cleaned[0].Flags.Is("duplicated"))
	assert.True(t, cleaned[1].Flags.Is("duplicated"))
	assert.False(t, cleaned[2].Flags.Is("duplicated"))
}

func TestRequiredFieldNullFlags(t *testing.T) {
	rec := baseAccount()
	rec["account_number"] = nil
	rec["opening_date"] = ""

	cleaned := cleanseAccounts(t, []models.Record{rec}, nil)
	require.Len(t, cleaned, 1)

	assert.True(t, cleaned[0].Flags.Is("account_number_null"))
	assert.True(t, cleaned[0].Flags.Is("opening_date_null"))
	assert.False(t, cleaned[0].Flags.Is("account_id_null"))
	assert.False(t, cleaned[0].Flags.Is("customer_id_null"))
	assert.False(t, cleaned[0].Flags.Is("account_type_null"))
}

func TestApprovalBeforeOpening(t *testing.T) {
	rec := baseAccount()
	rec["approval_date"] = "2023-06-20"

	cleaned := cleanseAccounts(t, []models.Record{rec}, nil)
	assert.True(t, cleaned[0].Flags.Is("approval_before_opening"))
}

func TestOpeningBeforeCustomerEntry(t *testing.T) {
	customer := models.CleanedRecord{
		Fields: models.Record{"customer_id": "CUST001", "entry_date": "2023-08-01"},
		Flags:  models.FlagSet{},
	}

	cleaned := cleanseAccounts(t, []models.Record{baseAccount()}, []models.CleanedRecord{customer})
	assert.True(t, cleaned[0].Flags.Is("opening_before_customer_entry"))
}

func TestOpeningUnknownCustomerTolerated(t *testing.T) {
	// Referential gap: the account's customer is not in the batch. The
	// rule cannot fire, and the record flows on.
	cleaned := cleanseAccounts(t, []models.Record{baseAccount()}, nil)
	assert.False(t, cleaned[0].Flags.Is("opening_before_customer_entry"))
}

func TestStatusAndActivationDateOrdering(t *testing.T) {
	rec := baseAccount()
	rec["status_change_date"] = "2023-07-02"                 // before approval
	rec["online_banking_activation_date"] = "2023-06-30"     // before approval

	cleaned := cleanseAccounts(t, []models.Record{rec}, nil)

	assert.True(t, cleaned[0].Flags.Is("invalid_status_change_date"))
	assert.True(t, cleaned[0].Flags.Is("invalid_online_banking_activation"))
}

func TestCardDateOrdering(t *testing.T) {
	rec := baseAccount()
	rec["card_issue_date"] = "2023-06-15" // before opening
	rec["card_expiry_date"] = "2023-01-01"

	cleaned := cleanseAccounts(t, []models.Record{rec}, nil)

	assert.True(t, cleaned[0].Flags.Is("card_issue_before_opening"))
	assert.True(t, cleaned[0].Flags.Is("card_expiry_before_issue"))
}

func TestBeneficiaryPercentageRange(t *testing.T) {
	inRange := baseAccount()
	inRange["beneficiaries"] = "Jane Doe:Spouse:60.0|John Doe:Son:40.0"

	negative := baseAccount()
	negative["account_id"] = "ACC002"
	negative["beneficiaries"] = "Jane Doe:Spouse:-0.2"

	overAllocated := baseAccount()
	overAllocated["account_id"] = "ACC003"
	overAllocated["beneficiaries"] = "Jane Doe:Spouse:150.0"

	cleaned := cleanseAccounts(t, []models.Record{inRange, negative, overAllocated}, nil)
	require.Len(t, cleaned, 3)

	assert.False(t, cleaned[0].Flags.Is("invalid_beneficiary_percentage"))
	assert.True(t, cleaned[1].Flags.Is("invalid_beneficiary_percentage"))
	assert.True(t, cleaned[2].Flags.Is("invalid_beneficiary_percentage"))
}

func TestAccountCodesUpperCased(t *testing.T) {
	cleaned := cleanseAccounts(t, []models.Record{baseAccount()}, nil)

	assert.Equal(t, "SAVINGS", cleaned[0].Fields.Str("account_type"))
	assert.Equal(t, "USD", cleaned[0].Fields.Str("currency"))
}
