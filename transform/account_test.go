package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/cleanse"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

func expandedAccountRows() []cleanse.ExpandedRow {
	record := models.CleanedRecord{
		Fields: models.Record{
			"account_id":      "ACC001",
			"account_number":  "100200300",
			"customer_id":     "CUST001",
			"account_type":    "SAVINGS",
			"currency":        "USD",
			"opening_date":    "2023-07-01",
			"approval_date":   "2023-07-03",
			"expected_amount": 12500.0,
			"branch_code":     "HRE01",
			"branch_name":     "Harare Main",
			"status":          "ACTIVE",
			"card_issue_date": "2023-07-10",
			"id_document":     "passport.pdf",
		},
		Flags: models.FlagSet{},
	}

	pct := 0.6
	return []cleanse.ExpandedRow{
		{
			Record:      record,
			JointHolder: "CUST002",
			ProductCode: "PRD01",
			Beneficiary: &cleanse.Beneficiary{Name: "Jane Doe", Relationship: "Spouse", Percentage: &pct},
		},
		{
			Record:      record,
			JointHolder: "CUST003",
			ProductCode: "PRD02",
		},
	}
}

func TestAccountProjectionDedupesSingleValuedFacets(t *testing.T) {
	projector := NewAccountProjector(utils.NewETLLogger(false))
	set := projector.Project(expandedAccountRows())

	// Two expanded rows, one underlying account: single-valued facets
	// collapse, multi-valued facets keep one row per distinct value.
	require.Len(t, set.Accounts, 1)
	assert.Len(t, set.Branches, 1)
	assert.Len(t, set.Types, 1)
	assert.Len(t, set.Statuses, 1)
	assert.Len(t, set.Documents, 1)
	assert.Len(t, set.Cards, 1)

	assert.Len(t, set.JointHolders, 2)
	assert.Len(t, set.Products, 2)
	assert.Len(t, set.Beneficiaries, 1)
}

func TestAccountProjectionDerivedFields(t *testing.T) {
	projector := NewAccountProjector(utils.NewETLLogger(false))
	set := projector.Project(expandedAccountRows())

	require.Len(t, set.Types, 1)
	assert.Equal(t, SegmentStandard, set.Types[0].ValueSegment)

	require.Len(t, set.Statuses, 1)
	assert.True(t, set.Statuses[0].IsActive)
	assert.False(t, set.Statuses[0].OnlineBankingActivated)

	require.Len(t, set.Cards, 1)
	assert.Equal(t, CardIssued, set.Cards[0].CardStatus)

	require.Len(t, set.Documents, 1)
	assert.True(t, set.Documents[0].IDDocumentProvided)
	assert.False(t, set.Documents[0].ProofOfAddressProvided)
}

func TestBeneficiaryDedupAcrossEqualPointers(t *testing.T) {
	pctA := 0.6
	pctB := 0.6
	record := models.CleanedRecord{
		Fields: models.Record{"account_id": "ACC001"},
		Flags:  models.FlagSet{},
	}
	rows := []cleanse.ExpandedRow{
		{Record: record, Beneficiary: &cleanse.Beneficiary{Name: "Jane Doe", Relationship: "Spouse", Percentage: &pctA}},
		{Record: record, Beneficiary: &cleanse.Beneficiary{Name: "Jane Doe", Relationship: "Spouse", Percentage: &pctB}},
	}

	projector := NewAccountProjector(utils.NewETLLogger(false))
	set := projector.Project(rows)

	assert.Len(t, set.Beneficiaries, 1)
}

func TestAccountFlagsRecordedOnFact(t *testing.T) {
	rows := expandedAccountRows()
	rows[0].Record.Flags.Set("duplicated", true)
	rows[1].Record.Flags.Set("duplicated", true)

	projector := NewAccountProjector(utils.NewETLLogger(false))
	set := projector.Project(rows)

	require.Len(t, set.Accounts, 1)
	assert.Equal(t, "duplicated", set.Accounts[0].DQFlags)
	assert.Equal(t, 1, set.Accounts[0].DQFlagCount)
}
