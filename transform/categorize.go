package transform

import (
	"time"
)

// Derived categorization values. All derivations here are pure functions
// of already-cleaned fields.
const (
	RiskHigh   = "HIGH"
	RiskMedium = "MEDIUM"
	RiskLow    = "LOW"

	SizeSmall  = "SMALL"
	SizeMedium = "MEDIUM"
	SizeLarge  = "LARGE"

	SegmentPremium  = "PREMIUM"
	SegmentStandard = "STANDARD"
	SegmentBasic    = "BASIC"

	EmploymentEmployed     = "EMPLOYED"
	EmploymentSelfEmployed = "SELF_EMPLOYED"
	EmploymentUnemployed   = "UNEMPLOYED"

	CardIssued    = "ISSUED"
	CardNotIssued = "NOT_ISSUED"
)

// Value-segment thresholds over the account's expected monthly amount.
const (
	premiumAmountThreshold  = 50000
	standardAmountThreshold = 10000
)

// RiskCategory buckets a risk score: >= 0.5 HIGH, >= 0.3 MEDIUM, else LOW.
func RiskCategory(score float64) string {
	switch {
	case score >= 0.5:
		return RiskHigh
	case score >= 0.3:
		return RiskMedium
	default:
		return RiskLow
	}
}

// EmploymentStatus derives the employment status from occupation and
// employer presence.
func EmploymentStatus(occupation, employerName string) string {
	switch {
	case occupation == "" || occupation == "UNEMPLOYED UNSKILLED":
		return EmploymentUnemployed
	case employerName != "":
		return EmploymentEmployed
	default:
		return EmploymentSelfEmployed
	}
}

// BusinessSizeCategory buckets a company by employee count: < 50 SMALL,
// < 200 MEDIUM, else LARGE.
func BusinessSizeCategory(employeeCount int) string {
	switch {
	case employeeCount < 50:
		return SizeSmall
	case employeeCount < 200:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// AccountValueSegment buckets an account by its expected monthly amount.
func AccountValueSegment(expectedAmount float64) string {
	switch {
	case expectedAmount >= premiumAmountThreshold:
		return SegmentPremium
	case expectedAmount >= standardAmountThreshold:
		return SegmentStandard
	default:
		return SegmentBasic
	}
}

// CardStatus derives the card state from the presence of an issue date.
func CardStatus(issueDate time.Time) string {
	if issueDate.IsZero() {
		return CardNotIssued
	}
	return CardIssued
}

// IsAccountActive derives the activity flag from the absence of a closure
// date.
func IsAccountActive(closureDate time.Time) bool {
	return closureDate.IsZero()
}
