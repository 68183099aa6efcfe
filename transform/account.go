package transform

import (
	"strconv"
	"strings"
	"time"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/cleanse"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

// AccountProjector maps expanded account rows onto the account fact and
// its dimensions. The expansion step can emit several rows per account;
// single-valued facets therefore repeat across rows and are deduplicated
// by full-row equality here, while the multi-valued facets (joint
// holders, products, beneficiaries) keep one row per distinct value.
type AccountProjector struct {
	logger *utils.ETLLogger
}

// NewAccountProjector creates a new AccountProjector.
func NewAccountProjector(logger *utils.ETLLogger) *AccountProjector {
	return &AccountProjector{logger: logger}
}

// Project builds the full account subject-area entity set for one batch of
// expanded rows.
func (p *AccountProjector) Project(rows []cleanse.ExpandedRow) *models.AccountSet {
	startTime := time.Now()
	set := &models.AccountSet{}
	seen := make(map[string]bool)

	for _, row := range rows {
		rec := row.Record.Fields
		accountID := rec.Str("account_id")

		openingDate, _ := rec.Date("opening_date")
		approvalDate, _ := rec.Date("approval_date")
		expectedAmount, _ := rec.Float("expected_amount")
		account := models.Account{
			AccountID:             accountID,
			AccountNumber:         rec.Str("account_number"),
			CustomerID:            rec.Str("customer_id"),
			Currency:              rec.Str("currency"),
			OpeningDate:           openingDate,
			ApprovalDate:          approvalDate,
			ExpectedMonthlyAmount: expectedAmount,
			DQFlags:               strings.Join(row.Record.Flags.Raised(), ","),
			DQFlagCount:           row.Record.Flags.Count(),
		}
		if dedup(seen, "account", account) {
			set.Accounts = append(set.Accounts, account)
		}

		branch := models.AccountBranch{
			AccountID:  accountID,
			BranchCode: rec.Str("branch_code"),
			BranchName: rec.Str("branch_name"),
		}
		if dedup(seen, "branch", branch) {
			set.Branches = append(set.Branches, branch)
		}

		accountType := models.AccountType{
			AccountID:    accountID,
			TypeCode:     rec.Str("account_type"),
			ValueSegment: AccountValueSegment(expectedAmount),
		}
		if dedup(seen, "type", accountType) {
			set.Types = append(set.Types, accountType)
		}

		statusChange, _ := rec.Date("status_change_date")
		closure, _ := rec.Date("closure_date")
		activation, _ := rec.Date("online_banking_activation_date")
		status := models.AccountStatus{
			AccountID:                   accountID,
			Status:                      rec.Str("status"),
			StatusChangeDate:            statusChange,
			ClosureDate:                 closure,
			IsActive:                    IsAccountActive(closure),
			OnlineBankingActivated:      !activation.IsZero(),
			OnlineBankingActivationDate: activation,
		}
		if dedup(seen, "status", status) {
			set.Statuses = append(set.Statuses, status)
		}

		documents := models.AccountDocuments{
			AccountID:              accountID,
			IDDocumentProvided:     !rec.IsNull("id_document"),
			ProofOfAddressProvided: !rec.IsNull("proof_of_address"),
			SourceOfFundsDeclared:  !rec.IsNull("source_of_funds"),
		}
		if dedup(seen, "docs", documents) {
			set.Documents = append(set.Documents, documents)
		}

		issueDate, _ := rec.Date("card_issue_date")
		expiryDate, _ := rec.Date("card_expiry_date")
		card := models.AccountCard{
			AccountID:      accountID,
			CardNumber:     rec.Str("card_number"),
			CardIssueDate:  issueDate,
			CardExpiryDate: expiryDate,
			CardStatus:     CardStatus(issueDate),
		}
		if dedup(seen, "card", card) {
			set.Cards = append(set.Cards, card)
		}

		if row.JointHolder != "" {
			joint := models.JointAccount{AccountID: accountID, JointCustomerID: row.JointHolder}
			if dedup(seen, "joint", joint) {
				set.JointHolders = append(set.JointHolders, joint)
			}
		}

		if row.ProductCode != "" {
			product := models.AccountProduct{AccountID: accountID, ProductCode: row.ProductCode}
			if dedup(seen, "product", product) {
				set.Products = append(set.Products, product)
			}
		}

		if row.Beneficiary != nil {
			beneficiary := models.AccountBeneficiary{
				AccountID:    accountID,
				Name:         row.Beneficiary.Name,
				Relationship: row.Beneficiary.Relationship,
				Percentage:   row.Beneficiary.Percentage,
			}
			if dedup(seen, "beneficiary", beneficiaryKey(beneficiary)) {
				set.Beneficiaries = append(set.Beneficiaries, beneficiary)
			}
		}

	}

	p.logger.Info("Projected account subject area: %d facts from %d expanded rows (%v)",
		len(set.Accounts), len(rows), time.Since(startTime))
	return set
}

// beneficiaryKey renders the beneficiary with its percentage dereferenced,
// so equal beneficiaries compare equal for deduplication despite the
// pointer-valued field.
func beneficiaryKey(b models.AccountBeneficiary) string {
	pct := "-"
	if b.Percentage != nil {
		pct = strconv.FormatFloat(*b.Percentage, 'f', -1, 64)
	}
	return b.AccountID + "|" + b.Name + "|" + b.Relationship + "|" + pct
}
