package models

import (
	"time"
)

// Normalized entity rows for the customer and account subject areas.
// Facts are the roots; every dimension row references its fact through
// CustomerID or AccountID. The whole set is regenerated on each run.

// Customer is the customer fact row.
type Customer struct {
	CustomerID    string
	CustomerType  string // INDIVIDUAL or COMPANY
	FirstName     string
	LastName      string
	CompanyName   string
	BirthDate     time.Time
	EntryDate     time.Time
	Gender        string
	MaritalStatus string
	NextOfKin     string
	Citizenship   string
	DQFlags       string // comma-separated raised flag names
	DQFlagCount   int
}

// CustomerIdentification holds the identity document facet.
type CustomerIdentification struct {
	CustomerID     string
	IDType         string
	IDNumber       string
	IDExpiryDate   time.Time
	VisaType       string
	VisaExpiryDate time.Time
}

// CustomerAddress holds one address per (customer, address type).
type CustomerAddress struct {
	CustomerID  string
	AddressType string // RESIDENTIAL or COMMERCIAL
	Street      string
	City        string
	Province    string
	Country     string
	IsPrimary   bool
}

// CustomerRisk holds the risk facet.
type CustomerRisk struct {
	CustomerID   string
	RiskScore    float64
	RiskCategory string // HIGH, MEDIUM, LOW
}

// CustomerEmployment holds the employment facet.
type CustomerEmployment struct {
	CustomerID       string
	Occupation       string
	EmployerName     string
	EmploymentStatus string
}

// CustomerContact holds the contact facet.
type CustomerContact struct {
	CustomerID             string
	Email                  string
	PhoneNumber            string
	PreferredContactMethod string
}

// CustomerBusinessProfile holds the company facet for business customers.
type CustomerBusinessProfile struct {
	CustomerID           string
	RegistrationNumber   string
	Industry             string
	EmployeeCount        int
	AnnualTurnover       float64
	BusinessSizeCategory string // SMALL, MEDIUM, LARGE
}

// Account is the account fact row.
type Account struct {
	AccountID             string
	AccountNumber         string
	CustomerID            string
	Currency              string
	OpeningDate           time.Time
	ApprovalDate          time.Time
	ExpectedMonthlyAmount float64
	DQFlags               string
	DQFlagCount           int
}

// AccountBranch holds the owning branch facet.
type AccountBranch struct {
	AccountID  string
	BranchCode string
	BranchName string
}

// AccountType holds the product-type facet plus the derived value segment.
type AccountType struct {
	AccountID    string
	TypeCode     string
	ValueSegment string // PREMIUM, STANDARD, BASIC
}

// AccountStatus holds the lifecycle facet.
type AccountStatus struct {
	AccountID                   string
	Status                      string
	StatusChangeDate            time.Time
	ClosureDate                 time.Time
	IsActive                    bool
	OnlineBankingActivated      bool
	OnlineBankingActivationDate time.Time
}

// AccountDocuments tracks which onboarding documents were provided.
type AccountDocuments struct {
	AccountID              string
	IDDocumentProvided     bool
	ProofOfAddressProvided bool
	SourceOfFundsDeclared  bool
}

// JointAccount links one additional holder to an account.
type JointAccount struct {
	AccountID       string
	JointCustomerID string
}

// AccountProduct links one bundled product code to an account.
type AccountProduct struct {
	AccountID   string
	ProductCode string
}

// AccountCard holds the card facet.
type AccountCard struct {
	AccountID      string
	CardNumber     string
	CardIssueDate  time.Time
	CardExpiryDate time.Time
	CardStatus     string // ISSUED, NOT_ISSUED
}

// AccountBeneficiary holds one named beneficiary. Percentage is nil when
// the source descriptor did not carry one.
type AccountBeneficiary struct {
	AccountID    string
	Name         string
	Relationship string
	Percentage   *float64
}

// Transaction is the transaction fact row. Only transactions that joined
// to a known account with a nonzero amount survive cleansing.
type Transaction struct {
	TransactionID          string
	TransactionDate        time.Time
	AccountID              string
	AccountNumber          string
	ReceivingAccountNumber string
	Amount                 float64
	Currency               string
	TransactionType        string
	Channel                string
	EWalletProvider        string
	LoanType               string
}

// CustomerSet is everything the customer subject-area load writes in one
// atomic unit.
type CustomerSet struct {
	Customers        []Customer
	Identifications  []CustomerIdentification
	Addresses        []CustomerAddress
	Risks            []CustomerRisk
	Employments      []CustomerEmployment
	Contacts         []CustomerContact
	BusinessProfiles []CustomerBusinessProfile
}

// AccountSet is everything the account subject-area load writes in one
// atomic unit.
type AccountSet struct {
	Accounts      []Account
	Branches      []AccountBranch
	Types         []AccountType
	Statuses      []AccountStatus
	Documents     []AccountDocuments
	JointHolders  []JointAccount
	Products      []AccountProduct
	Cards         []AccountCard
	Beneficiaries []AccountBeneficiary
}
