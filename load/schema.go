package load

import (
	"database/sql"
	"fmt"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// normalizedTables is the fixed output contract: every entity table of the
// customer, account and transaction subject areas, in creation order.
var normalizedTables = []struct {
	name string
	ddl  string
}{
	{"customers", `
	CREATE TABLE IF NOT EXISTS customers (
		customer_id VARCHAR(50) PRIMARY KEY,
		customer_type VARCHAR(20) NOT NULL,
		first_name VARCHAR(100) NOT NULL DEFAULT '',
		last_name VARCHAR(100) NOT NULL DEFAULT '',
		company_name VARCHAR(200) NOT NULL DEFAULT '',
		birth_date DATE NULL,
		entry_date DATE NULL,
		gender VARCHAR(30) NOT NULL DEFAULT '',
		marital_status VARCHAR(30) NOT NULL DEFAULT '',
		next_of_kin VARCHAR(200) NOT NULL DEFAULT '',
		citizenship VARCHAR(3) NOT NULL DEFAULT '',
		dq_flags TEXT,
		dq_flag_count INT NOT NULL DEFAULT 0
	)`},
	{"customer_identification", `
	CREATE TABLE IF NOT EXISTS customer_identification (
		customer_id VARCHAR(50) NOT NULL,
		id_type VARCHAR(50) NOT NULL DEFAULT '',
		id_number VARCHAR(50) NOT NULL DEFAULT '',
		id_expiry_date DATE NULL,
		visa_type VARCHAR(50) NOT NULL DEFAULT '',
		visa_expiry_date DATE NULL
	)`},
	{"customer_address", `
	CREATE TABLE IF NOT EXISTS customer_address (
		customer_id VARCHAR(50) NOT NULL,
		address_type VARCHAR(20) NOT NULL,
		street VARCHAR(200) NOT NULL DEFAULT '',
		city VARCHAR(100) NOT NULL DEFAULT '',
		province VARCHAR(100) NOT NULL DEFAULT '',
		country VARCHAR(100) NOT NULL DEFAULT '',
		is_primary TINYINT(1) NOT NULL DEFAULT 0
	)`},
	{"customer_risk", `
	CREATE TABLE IF NOT EXISTS customer_risk (
		customer_id VARCHAR(50) NOT NULL,
		risk_score DECIMAL(5,4) NOT NULL,
		risk_category VARCHAR(10) NOT NULL
	)`},
	{"customer_employment", `
	CREATE TABLE IF NOT EXISTS customer_employment (
		customer_id VARCHAR(50) NOT NULL,
		occupation VARCHAR(100) NOT NULL DEFAULT '',
		employer_name VARCHAR(200) NOT NULL DEFAULT '',
		employment_status VARCHAR(20) NOT NULL
	)`},
	{"customer_contact", `
	CREATE TABLE IF NOT EXISTS customer_contact (
		customer_id VARCHAR(50) NOT NULL,
		email VARCHAR(200) NOT NULL DEFAULT '',
		phone_number VARCHAR(20) NOT NULL DEFAULT '',
		preferred_contact_method VARCHAR(20) NOT NULL DEFAULT ''
	)`},
	{"customer_business_profile", `
	CREATE TABLE IF NOT EXISTS customer_business_profile (
		customer_id VARCHAR(50) NOT NULL,
		registration_number VARCHAR(50) NOT NULL DEFAULT '',
		industry VARCHAR(100) NOT NULL DEFAULT '',
		employee_count INT NOT NULL DEFAULT 0,
		annual_turnover DECIMAL(15,2) NOT NULL DEFAULT 0,
		business_size_category VARCHAR(10) NOT NULL
	)`},
	{"accounts", `
	CREATE TABLE IF NOT EXISTS accounts (
		account_id VARCHAR(50) PRIMARY KEY,
		account_number VARCHAR(50) NOT NULL DEFAULT '',
		customer_id VARCHAR(50) NOT NULL DEFAULT '',
		currency VARCHAR(3) NOT NULL DEFAULT '',
		opening_date DATE NULL,
		approval_date DATE NULL,
		expected_monthly_amount DECIMAL(15,2) NOT NULL DEFAULT 0,
		dq_flags TEXT,
		dq_flag_count INT NOT NULL DEFAULT 0
	)`},
	{"account_branch", `
	CREATE TABLE IF NOT EXISTS account_branch (
		account_id VARCHAR(50) NOT NULL,
		branch_code VARCHAR(20) NOT NULL DEFAULT '',
		branch_name VARCHAR(100) NOT NULL DEFAULT ''
	)`},
	{"account_type", `
	CREATE TABLE IF NOT EXISTS account_type (
		account_id VARCHAR(50) NOT NULL,
		type_code VARCHAR(50) NOT NULL DEFAULT '',
		value_segment VARCHAR(10) NOT NULL
	)`},
	{"account_status", `
	CREATE TABLE IF NOT EXISTS account_status (
		account_id VARCHAR(50) NOT NULL,
		status VARCHAR(30) NOT NULL DEFAULT '',
		status_change_date DATE NULL,
		closure_date DATE NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		online_banking_activated TINYINT(1) NOT NULL DEFAULT 0,
		online_banking_activation_date DATE NULL
	)`},
	{"account_documents", `
	CREATE TABLE IF NOT EXISTS account_documents (
		account_id VARCHAR(50) NOT NULL,
		id_document_provided TINYINT(1) NOT NULL DEFAULT 0,
		proof_of_address_provided TINYINT(1) NOT NULL DEFAULT 0,
		source_of_funds_declared TINYINT(1) NOT NULL DEFAULT 0
	)`},
	{"joint_account", `
	CREATE TABLE IF NOT EXISTS joint_account (
		account_id VARCHAR(50) NOT NULL,
		joint_customer_id VARCHAR(50) NOT NULL
	)`},
	{"account_product", `
	CREATE TABLE IF NOT EXISTS account_product (
		account_id VARCHAR(50) NOT NULL,
		product_code VARCHAR(50) NOT NULL
	)`},
	{"account_card", `
	CREATE TABLE IF NOT EXISTS account_card (
		account_id VARCHAR(50) NOT NULL,
		card_number VARCHAR(50) NOT NULL DEFAULT '',
		card_issue_date DATE NULL,
		card_expiry_date DATE NULL,
		card_status VARCHAR(20) NOT NULL
	)`},
	{"account_beneficiary", `
	CREATE TABLE IF NOT EXISTS account_beneficiary (
		account_id VARCHAR(50) NOT NULL,
		name VARCHAR(200) NOT NULL DEFAULT '',
		relationship VARCHAR(50) NOT NULL DEFAULT '',
		percentage DECIMAL(5,4) NULL
	)`},
	{"transactions", `
	CREATE TABLE IF NOT EXISTS transactions (
		transaction_id VARCHAR(50) PRIMARY KEY,
		transaction_date DATETIME NULL,
		account_id VARCHAR(50) NOT NULL,
		account_number VARCHAR(50) NOT NULL DEFAULT '',
		receiving_account_number VARCHAR(50) NOT NULL DEFAULT '',
		amount DECIMAL(15,2) NOT NULL,
		currency VARCHAR(3) NOT NULL DEFAULT '',
		transaction_type VARCHAR(50) NOT NULL DEFAULT '',
		channel VARCHAR(50) NOT NULL DEFAULT '',
		ewallet_provider VARCHAR(50) NOT NULL DEFAULT '',
		loan_type VARCHAR(50) NOT NULL DEFAULT ''
	)`},
}

// CreateNormalizedSchema creates every target entity table that does not
// yet exist. A missing table is recoverable, not an error; this stage is
// idempotent and safe to run before every load.
func CreateNormalizedSchema(db *sql.DB, logger *utils.ETLLogger) error {
	for _, table := range normalizedTables {
		if _, err := db.Exec(table.ddl); err != nil {
			return fmt.Errorf("creating table %s: %w", table.name, err)
		}
	}
	logger.Info("Normalized schema ready (%d tables)", len(normalizedTables))
	return nil
}
