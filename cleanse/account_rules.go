package cleanse

import (
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
)

// AccountCatalog builds the data-quality rule catalog for account records.
// The duplicated rule needs the batch-global account_number counts and the
// opening_before_customer_entry rule needs the related customer's entry
// date; both come in through the RuleContext.
func AccountCatalog() Catalog {
	catalog := Catalog{
		{Name: "duplicated", Eval: func(rec models.Record, ctx *RuleContext) bool {
			number := rec.Str("account_number")
			return number != "" && ctx.AccountNumberCounts[number] > 1
		}},
		{Name: "approval_before_opening", Eval: func(rec models.Record, _ *RuleContext) bool {
			approval, hasApproval := rec.Date("approval_date")
			opening, hasOpening := rec.Date("opening_date")
			return hasApproval && hasOpening && approval.Before(opening)
		}},
		{Name: "opening_before_customer_entry", Eval: func(rec models.Record, ctx *RuleContext) bool {
			opening, hasOpening := rec.Date("opening_date")
			entry, known := ctx.CustomerEntryDates[rec.Str("customer_id")]
			return hasOpening && known && opening.Before(entry)
		}},
		{Name: "invalid_status_change_date", Eval: func(rec models.Record, _ *RuleContext) bool {
			change, hasChange := rec.Date("status_change_date")
			if !hasChange {
				return false
			}
			opening, hasOpening := rec.Date("opening_date")
			approval, hasApproval := rec.Date("approval_date")
			return (hasOpening && change.Before(opening)) || (hasApproval && change.Before(approval))
		}},
		{Name: "invalid_online_banking_activation", Eval: func(rec models.Record, _ *RuleContext) bool {
			activation, hasActivation := rec.Date("online_banking_activation_date")
			approval, hasApproval := rec.Date("approval_date")
			return hasActivation && hasApproval && activation.Before(approval)
		}},
		{Name: "card_expiry_before_issue", Eval: func(rec models.Record, _ *RuleContext) bool {
			expiry, hasExpiry := rec.Date("card_expiry_date")
			issue, hasIssue := rec.Date("card_issue_date")
			return hasExpiry && hasIssue && expiry.Before(issue)
		}},
		{Name: "card_issue_before_opening", Eval: func(rec models.Record, _ *RuleContext) bool {
			issue, hasIssue := rec.Date("card_issue_date")
			opening, hasOpening := rec.Date("opening_date")
			return hasIssue && hasOpening && issue.Before(opening)
		}},
		{Name: "invalid_beneficiary_percentage", Eval: func(rec models.Record, _ *RuleContext) bool {
			for _, descriptor := range SplitList(rec.Str("beneficiaries")) {
				beneficiary := ParseBeneficiary(descriptor)
				if beneficiary.Percentage == nil {
					continue
				}
				if *beneficiary.Percentage < 0 || *beneficiary.Percentage > 1 {
					return true
				}
			}
			return false
		}},
	}

	// One null-check flag per required field.
	for _, field := range []string{"account_id", "account_number", "customer_id", "account_type", "opening_date"} {
		field := field
		catalog = append(catalog, Rule{
			Name: field + "_null",
			Eval: func(rec models.Record, _ *RuleContext) bool {
				return rec.IsNull(field)
			},
		})
	}

	return catalog
}
