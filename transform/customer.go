package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// CustomerProjector maps cleaned customer records onto the customer fact
// and its dimensions.
type CustomerProjector struct {
	logger *utils.ETLLogger
}

// NewCustomerProjector creates a new CustomerProjector.
func NewCustomerProjector(logger *utils.ETLLogger) *CustomerProjector {
	return &CustomerProjector{logger: logger}
}

// Project builds the full customer subject-area entity set for one batch.
// Dimension rows are deduplicated by full-row equality before they reach
// the loader.
func (p *CustomerProjector) Project(customers []models.CleanedRecord) *models.CustomerSet {
	startTime := time.Now()
	set := &models.CustomerSet{}
	seen := make(map[string]bool)

	for _, customer := range customers {
		rec := customer.Fields
		customerID := rec.Str("customer_id")
		isCompany := rec.Str("customer_type") == "COMPANY"

		birthDate, _ := rec.Date("birth_date")
		entryDate, _ := rec.Date("entry_date")
		set.Customers = append(set.Customers, models.Customer{
			CustomerID:    customerID,
			CustomerType:  rec.Str("customer_type"),
			FirstName:     rec.Str("first_name"),
			LastName:      rec.Str("last_name"),
			CompanyName:   rec.Str("company_name"),
			BirthDate:     birthDate,
			EntryDate:     entryDate,
			Gender:        rec.Str("gender"),
			MaritalStatus: rec.Str("marital_status"),
			NextOfKin:     rec.Str("next_of_kin"),
			Citizenship:   rec.Str("citizenship"),
			DQFlags:       strings.Join(customer.Flags.Raised(), ","),
			DQFlagCount:   customer.Flags.Count(),
		})

		idExpiry, _ := rec.Date("id_expiry_date")
		visaExpiry, _ := rec.Date("visa_expiry_date")
		identification := models.CustomerIdentification{
			CustomerID:     customerID,
			IDType:         rec.Str("id_type"),
			IDNumber:       rec.Str("id_number"),
			IDExpiryDate:   idExpiry,
			VisaType:       rec.Str("visa_type"),
			VisaExpiryDate: visaExpiry,
		}
		if dedup(seen, "ident", identification) {
			set.Identifications = append(set.Identifications, identification)
		}

		p.projectAddresses(set, seen, rec, customerID, isCompany)

		if score, ok := rec.Float("risk_score"); ok {
			risk := models.CustomerRisk{
				CustomerID:   customerID,
				RiskScore:    score,
				RiskCategory: RiskCategory(score),
			}
			if dedup(seen, "risk", risk) {
				set.Risks = append(set.Risks, risk)
			}
		}

		employment := models.CustomerEmployment{
			CustomerID:       customerID,
			Occupation:       rec.Str("occupation"),
			EmployerName:     rec.Str("employer_name"),
			EmploymentStatus: EmploymentStatus(rec.Str("occupation"), rec.Str("employer_name")),
		}
		if dedup(seen, "empl", employment) {
			set.Employments = append(set.Employments, employment)
		}

		contact := models.CustomerContact{
			CustomerID:             customerID,
			Email:                  rec.Str("email"),
			PhoneNumber:            rec.Str("phone_number"),
			PreferredContactMethod: rec.Str("preferred_contact_method"),
		}
		if dedup(seen, "contact", contact) {
			set.Contacts = append(set.Contacts, contact)
		}

		if isCompany {
			employees, _ := rec.Int("number_of_employees")
			turnover, _ := rec.Float("annual_turnover")
			profile := models.CustomerBusinessProfile{
				CustomerID:           customerID,
				RegistrationNumber:   rec.Str("registration_number"),
				Industry:             rec.Str("industry"),
				EmployeeCount:        int(employees),
				AnnualTurnover:       turnover,
				BusinessSizeCategory: BusinessSizeCategory(int(employees)),
			}
			if dedup(seen, "profile", profile) {
				set.BusinessProfiles = append(set.BusinessProfiles, profile)
			}
		}
	}

	p.logger.Info("Projected customer subject area: %d facts, %d addresses (%v)",
		len(set.Customers), len(set.Addresses), time.Since(startTime))
	return set
}

// projectAddresses emits one row per (customer, address type). The address
// table holds a single primary address per customer: residential rows are
// primary for individuals, commercial rows only for companies.
func (p *CustomerProjector) projectAddresses(set *models.CustomerSet, seen map[string]bool, rec models.Record, customerID string, isCompany bool) {
	if rec.Str("residential_country") != "" {
		address := models.CustomerAddress{
			CustomerID:  customerID,
			AddressType: "RESIDENTIAL",
			Street:      rec.Str("residential_street"),
			City:        rec.Str("residential_city"),
			Province:    rec.Str("residential_province"),
			Country:     rec.Str("residential_country"),
			IsPrimary:   !isCompany,
		}
		if dedup(seen, "addr", address) {
			set.Addresses = append(set.Addresses, address)
		}
	}

	if rec.Str("commercial_country") != "" {
		address := models.CustomerAddress{
			CustomerID:  customerID,
			AddressType: "COMMERCIAL",
			Street:      rec.Str("commercial_street"),
			City:        rec.Str("commercial_city"),
			Province:    rec.Str("commercial_province"),
			Country:     rec.Str("commercial_country"),
			IsPrimary:   isCompany,
		}
		if dedup(seen, "addr", address) {
			set.Addresses = append(set.Addresses, address)
		}
	}
}

// dedup registers a row's full-value identity under a table tag and
// reports whether the row is new.
func dedup(seen map[string]bool, tag string, row any) bool {
	key := fmt.Sprintf("%s|%+v", tag, row)
	if seen[key] {
		return false
	}
	seen[key] = true
	return true
}
