package cleanse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
)

func multiValueAccount() models.CleanedRecord {
	return models.CleanedRecord{
		Fields: models.Record{
			"account_id":    "ACC001",
			"joint_holders": "CUST002|CUST003",
			"product_codes": "PRD01|PRD02|PRD03",
			"beneficiaries": "Jane Doe:Spouse:60.0|John Doe:Son:40.0",
		},
		Flags: models.FlagSet{},
	}
}

func TestPositionalZipCardinality(t *testing.T) {
	rows := NewExpander(CombinePositional).Expand([]models.CleanedRecord{multiValueAccount()})
	require.Len(t, rows, 3)

	assert.Equal(t, "CUST002", rows[0].JointHolder)
	assert.Equal(t, "PRD01", rows[0].ProductCode)
	require.NotNil(t, rows[0].Beneficiary)
	assert.Equal(t, "Jane Doe", rows[0].Beneficiary.Name)

	// Shorter lists run out; their slots stay empty on later rows.
	assert.Equal(t, "", rows[2].JointHolder)
	assert.Equal(t, "PRD03", rows[2].ProductCode)
	assert.Nil(t, rows[2].Beneficiary)
}

func TestCrossProductCardinality(t *testing.T) {
	rows := NewExpander(CombineCrossProduct).Expand([]models.CleanedRecord{multiValueAccount()})
	assert.Len(t, rows, 12)
}

func TestExpandWithoutMultiValueFields(t *testing.T) {
	account := models.CleanedRecord{
		Fields: models.Record{"account_id": "ACC001"},
		Flags:  models.FlagSet{},
	}

	for _, strategy := range []CombinationStrategy{CombinePositional, CombineCrossProduct} {
		rows := NewExpander(strategy).Expand([]models.CleanedRecord{account})
		require.Len(t, rows, 1)
		assert.Equal(t, "", rows[0].JointHolder)
		assert.Equal(t, "", rows[0].ProductCode)
		assert.Nil(t, rows[0].Beneficiary)
	}
}

func TestSplitListDropsEmptyTokens(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, SplitList("A||B"))
	assert.Equal(t, []string{"A", "B"}, SplitList(" A | B "))
	assert.Nil(t, SplitList("   "))
	assert.Nil(t, SplitList("||"))
}

func TestParseBeneficiary(t *testing.T) {
	full := ParseBeneficiary("Jane Doe:Spouse:60.5")
	assert.Equal(t, "Jane Doe", full.Name)
	assert.Equal(t, "Spouse", full.Relationship)
	require.NotNil(t, full.Percentage)
	assert.InDelta(t, 0.605, *full.Percentage, 1e-9)

	partial := ParseBeneficiary("Jane Doe:Spouse")
	assert.Equal(t, "Spouse", partial.Relationship)
	assert.Nil(t, partial.Percentage)

	nameOnly := ParseBeneficiary("Jane Doe")
	assert.Equal(t, "Jane Doe", nameOnly.Name)
	assert.Equal(t, "", nameOnly.Relationship)

	badPct := ParseBeneficiary("Jane Doe:Spouse:sixty")
	assert.Nil(t, badPct.Percentage)

	extras := ParseBeneficiary("Jane Doe:Spouse:60.0:ignored")
	require.NotNil(t, extras.Percentage)
	assert.InDelta(t, 0.6, *extras.Percentage, 1e-9)
}

func TestParseBeneficiaryPercentageScale(t *testing.T) {
	// Fractions pass through; percent-scale values normalize to [0,1].
	fraction := ParseBeneficiary("Jane Doe:Spouse:0.6")
	require.NotNil(t, fraction.Percentage)
	assert.InDelta(t, 0.6, *fraction.Percentage, 1e-9)

	percent := ParseBeneficiary("Jane Doe:Spouse:60")
	require.NotNil(t, percent.Percentage)
	assert.InDelta(t, 0.6, *percent.Percentage, 1e-9)

	whole := ParseBeneficiary("Jane Doe:Spouse:1")
	require.NotNil(t, whole.Percentage)
	assert.InDelta(t, 1.0, *whole.Percentage, 1e-9)

	full := ParseBeneficiary("Jane Doe:Spouse:100")
	require.NotNil(t, full.Percentage)
	assert.InDelta(t, 1.0, *full.Percentage, 1e-9)
}

func TestStrategyFromString(t *testing.T) {
	strategy, err := StrategyFromString("positional")
	require.NoError(t, err)
	assert.Equal(t, CombinePositional, strategy)

	strategy, err = StrategyFromString("cross_product")
	require.NoError(t, err)
	assert.Equal(t, CombineCrossProduct, strategy)

	strategy, err = StrategyFromString("")
	require.NoError(t, err)
	assert.Equal(t, CombinePositional, strategy)

	_, err = StrategyFromString("outer_join")
	assert.Error(t, err)
}
