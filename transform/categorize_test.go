package transform

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskCategoryBoundaries(t *testing.T) {
	assert.Equal(t, RiskHigh, RiskCategory(0.5))
	assert.Equal(t, RiskHigh, RiskCategory(0.93))
	assert.Equal(t, RiskMedium, RiskCategory(0.3))
	assert.Equal(t, RiskMedium, RiskCategory(0.49))
	assert.Equal(t, RiskLow, RiskCategory(0.29))
	assert.Equal(t, RiskLow, RiskCategory(0))
}

func TestRiskCategoryFromStringScores(t *testing.T) {
	// Staged feeds deliver scores as strings; categorization happens on
	// the parsed value.
	cases := map[string]string{
		"0.6":  RiskHigh,
		"0.35": RiskMedium,
		"0.1":  RiskLow,
	}
	for raw, want := range cases {
		score, err := strconv.ParseFloat(raw, 64)
		require.NoError(t, err)
		assert.Equal(t, want, RiskCategory(score), "score %s", raw)
	}
}

func TestEmploymentStatus(t *testing.T) {
	assert.Equal(t, EmploymentUnemployed, EmploymentStatus("", ""))
	assert.Equal(t, EmploymentUnemployed, EmploymentStatus("UNEMPLOYED UNSKILLED", "Acme Ltd"))
	assert.Equal(t, EmploymentEmployed, EmploymentStatus("TEACHER", "Harare High"))
	assert.Equal(t, EmploymentSelfEmployed, EmploymentStatus("TRADER", ""))
}

func TestBusinessSizeCategory(t *testing.T) {
	assert.Equal(t, SizeSmall, BusinessSizeCategory(0))
	assert.Equal(t, SizeSmall, BusinessSizeCategory(49))
	assert.Equal(t, SizeMedium, BusinessSizeCategory(50))
	assert.Equal(t, SizeMedium, BusinessSizeCategory(199))
	assert.Equal(t, SizeLarge, BusinessSizeCategory(200))
}

func TestAccountValueSegment(t *testing.T) {
	assert.Equal(t, SegmentPremium, AccountValueSegment(50000))
	assert.Equal(t, SegmentStandard, AccountValueSegment(49999.99))
	assert.Equal(t, SegmentStandard, AccountValueSegment(10000))
	assert.Equal(t, SegmentBasic, AccountValueSegment(9999.99))
}

func TestCardStatus(t *testing.T) {
	assert.Equal(t, CardNotIssued, CardStatus(time.Time{}))
	assert.Equal(t, CardIssued, CardStatus(time.Date(2023, 7, 10, 0, 0, 0, 0, time.UTC)))
}

func TestIsAccountActive(t *testing.T) {
	assert.True(t, IsAccountActive(time.Time{}))
	assert.False(t, IsAccountActive(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
}
