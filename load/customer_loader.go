package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// CustomerLoader replaces the customer subject area wholesale. All tables
// load inside one transaction: either every insert for the subject area
// commits, or readers keep seeing the previous batch untouched.
type CustomerLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewCustomerLoader creates a new CustomerLoader.
func NewCustomerLoader(db *sql.DB, logger *utils.ETLLogger) *CustomerLoader {
	return &CustomerLoader{db: db, logger: logger}
}

// Load writes one batch's customer entity set. Returns the number of fact
// rows written. Dimensions are cleared before the fact and inserted after
// it, keeping foreign references valid at every point inside the
// transaction.
func (l *CustomerLoader) Load(set *models.CustomerSet) (int, error) {
	startTime := time.Now()
	l.logger.Info("Loading customer subject area (%d facts)", len(set.Customers))

	tx, err := l.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning customer load transaction: %w", err)
	}
	defer tx.Rollback()

	// Replace semantics: clear dimensions first, then the fact.
	for _, table := range []string{
		"customer_identification", "customer_address", "customer_risk",
		"customer_employment", "customer_contact", "customer_business_profile",
		"customers",
	} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return 0, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := l.insertCustomers(tx, set.Customers); err != nil {
		return 0, err
	}
	if err := l.insertDimensions(tx, set); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing customer load: %w", err)
	}

	l.logger.Info("Customer subject area loaded: %d facts, %d dimension rows (%v)",
		len(set.Customers), dimensionRowCount(set), time.Since(startTime))
	return len(set.Customers), nil
}

func (l *CustomerLoader) insertCustomers(tx *sql.Tx, customers []models.Customer) error {
	stmt, err := tx.Prepare(`
		INSERT INTO customers
		(customer_id, customer_type, first_name, last_name, company_name,
		birth_date, entry_date, gender, marital_status, next_of_kin,
		citizenship, dq_flags, dq_flag_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing customers insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range customers {
		_, err := stmt.Exec(
			c.CustomerID, c.CustomerType, c.FirstName, c.LastName, c.CompanyName,
			nullDate(c.BirthDate), nullDate(c.EntryDate), c.Gender, c.MaritalStatus,
			c.NextOfKin, c.Citizenship, c.DQFlags, c.DQFlagCount,
		)
		if err != nil {
			return fmt.Errorf("inserting customer %s: %w", c.CustomerID, err)
		}
	}
	return nil
}

func (l *CustomerLoader) insertDimensions(tx *sql.Tx, set *models.CustomerSet) error {
	if err := insertRows(tx, `
		INSERT INTO customer_identification
		(customer_id, id_type, id_number, id_expiry_date, visa_type, visa_expiry_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		set.Identifications, func(row models.CustomerIdentification) []any {
			return []any{row.CustomerID, row.IDType, row.IDNumber,
				nullDate(row.IDExpiryDate), row.VisaType, nullDate(row.VisaExpiryDate)}
		}); err != nil {
		return err
	}

	if err := insertRows(tx, `
		INSERT INTO customer_address
		(customer_id, address_type, street, city, province, country, is_primary)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		set.Addresses, func(row models.CustomerAddress) []any {
			return []any{row.CustomerID, row.AddressType, row.Street, row.City,
				row.Province, row.Country, row.IsPrimary}
		}); err != nil {
		return err
	}

	if err := insertRows(tx, `
		INSERT INTO customer_risk (customer_id, risk_score, risk_category)
		VALUES (?, ?, ?)`,
		set.Risks, func(row models.CustomerRisk) []any {
			return []any{row.CustomerID, row.RiskScore, row.RiskCategory}
		}); err != nil {
		return err
	}

	if err := insertRows(tx, `
		INSERT INTO customer_employment
		(customer_id, occupation, employer_name, employment_status)
		VALUES (?, ?, ?, ?)`,
		set.Employments, func(row models.CustomerEmployment) []any {
			return []any{row.CustomerID, row.Occupation, row.EmployerName, row.EmploymentStatus}
		}); err != nil {
		return err
	}

	if err := insertRows(tx, `
		INSERT INTO customer_contact
		(customer_id, email, phone_number, preferred_contact_method)
		VALUES (?, ?, ?, ?)`,
		set.Contacts, func(row models.CustomerContact) []any {
			return []any{row.CustomerID, row.Email, row.PhoneNumber, row.PreferredContactMethod}
		}); err != nil {
		return err
	}

	return insertRows(tx, `
		INSERT INTO customer_business_profile
		(customer_id, registration_number, industry, employee_count,
		annual_turnover, business_size_category)
		VALUES (?, ?, ?, ?, ?, ?)`,
		set.BusinessProfiles, func(row models.CustomerBusinessProfile) []any {
			return []any{row.CustomerID, row.RegistrationNumber, row.Industry,
				row.EmployeeCount, row.AnnualTurnover, row.BusinessSizeCategory}
		})
}

func dimensionRowCount(set *models.CustomerSet) int {
	return len(set.Identifications) + len(set.Addresses) + len(set.Risks) +
		len(set.Employments) + len(set.Contacts) + len(set.BusinessProfiles)
}
