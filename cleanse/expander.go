package cleanse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
)

// Delimiters for multi-valued account fields. Joint holders, product
// codes and beneficiaries are pipe-delimited lists; each beneficiary
// descriptor uses a colon between its name, relationship and percentage.
const (
	ListDelimiter        = "|"
	BeneficiaryDelimiter = ":"
)

// CombinationStrategy selects how the independently delimited multi-value
// fields of one account are combined into expanded rows.
//
// The source system combined them with an unconditional outer join, which
// produces a full cross-product of the token counts (2 joint holders x 3
// products x 2 beneficiaries = 12 rows). That is almost certainly not the
// intended cardinality, so positional pairing is the default and the
// cross-product remains selectable until the product owner confirms.
type CombinationStrategy int

const (
	// CombinePositional pairs tokens by index; shorter lists pad with
	// empty slots. One account yields max(counts, 1) rows.
	CombinePositional CombinationStrategy = iota

	// CombineCrossProduct combines every token of every list with every
	// token of the others. One account yields prod(max(count,1)) rows.
	CombineCrossProduct
)

// StrategyFromString parses a configured strategy name.
func StrategyFromString(name string) (CombinationStrategy, error) {
	switch name {
	case "positional", "":
		return CombinePositional, nil
	case "cross_product":
		return CombineCrossProduct, nil
	default:
		return CombinePositional, fmt.Errorf("unknown combination strategy %q", name)
	}
}

// Beneficiary is one parsed beneficiary descriptor. Percentage is nil when
// the descriptor carried no parsable percentage.
type Beneficiary struct {
	Name         string
	Relationship string
	Percentage   *float64
}

// ExpandedRow is one combination of an account's multi-valued fields,
// still attached to its cleaned record. Empty JointHolder/ProductCode and
// nil Beneficiary mean the slot was not populated for this row.
type ExpandedRow struct {
	Record      models.CleanedRecord
	JointHolder string
	ProductCode string
	Beneficiary *Beneficiary
}

// Expander explodes cleaned account records over their multi-valued
// fields.
type Expander struct {
	strategy CombinationStrategy
}

// NewExpander creates an Expander with the given combination strategy.
func NewExpander(strategy CombinationStrategy) *Expander {
	return &Expander{strategy: strategy}
}

// Expand produces the expanded rows for one batch of cleaned accounts, in
// input order.
func (e *Expander) Expand(accounts []models.CleanedRecord) []ExpandedRow {
	var rows []ExpandedRow
	for _, account := range accounts {
		rows = append(rows, e.expandOne(account)...)
	}
	return rows
}

func (e *Expander) expandOne(account models.CleanedRecord) []ExpandedRow {
	holders := SplitList(account.Fields.Str("joint_holders"))
	products := SplitList(account.Fields.Str("product_codes"))
	beneficiaries := SplitList(account.Fields.Str("beneficiaries"))

	if e.strategy == CombineCrossProduct {
		return crossProduct(account, holders, products, beneficiaries)
	}
	return positionalZip(account, holders, products, beneficiaries)
}

func positionalZip(account models.CleanedRecord, holders, products, beneficiaries []string) []ExpandedRow {
	n := len(holders)
	if len(products) > n {
		n = len(products)
	}
	if len(beneficiaries) > n {
		n = len(beneficiaries)
	}
	if n == 0 {
		n = 1
	}

	rows := make([]ExpandedRow, 0, n)
	for i := 0; i < n; i++ {
		row := ExpandedRow{Record: account}
		if i < len(holders) {
			row.JointHolder = TrimUpper(holders[i])
		}
		if i < len(products) {
			row.ProductCode = TrimUpper(products[i])
		}
		if i < len(beneficiaries) {
			beneficiary := ParseBeneficiary(beneficiaries[i])
			row.Beneficiary = &beneficiary
		}
		rows = append(rows, row)
	}
	return rows
}

func crossProduct(account models.CleanedRecord, holders, products, beneficiaries []string) []ExpandedRow {
	// Empty lists still contribute one empty slot so the account itself
	// is never lost.
	holderSlots := orEmptySlot(holders)
	productSlots := orEmptySlot(products)
	beneficiarySlots := orEmptySlot(beneficiaries)

	rows := make([]ExpandedRow, 0, len(holderSlots)*len(productSlots)*len(beneficiarySlots))
	for _, holder := range holderSlots {
		for _, product := range productSlots {
			for _, descriptor := range beneficiarySlots {
				row := ExpandedRow{
					Record:      account,
					JointHolder: TrimUpper(holder),
					ProductCode: TrimUpper(product),
				}
				if descriptor != "" {
					beneficiary := ParseBeneficiary(descriptor)
					row.Beneficiary = &beneficiary
				}
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func orEmptySlot(tokens []string) []string {
	if len(tokens) == 0 {
		return []string{""}
	}
	return tokens
}

// SplitList tokenizes a pipe-delimited multi-value field. Empty tokens are
// dropped, so "A||B" and "A|B" read the same.
func SplitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var tokens []string
	for _, token := range strings.Split(raw, ListDelimiter) {
		token = strings.TrimSpace(token)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// ParseBeneficiary splits one beneficiary descriptor into its three named
// sub-fields: name, relationship and percentage. Missing sub-fields stay
// zero-valued; tokens beyond the third are ignored. The stored percentage
// is a fraction in [0,1]; source descriptors written on the percent scale
// ("Jane Doe:Spouse:60.0") are divided by 100.
func ParseBeneficiary(descriptor string) Beneficiary {
	parts := strings.Split(descriptor, BeneficiaryDelimiter)
	var beneficiary Beneficiary

	if len(parts) > 0 {
		beneficiary.Name = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		beneficiary.Relationship = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		if pct, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); err == nil {
			if pct > 1 {
				pct /= 100
			}
			beneficiary.Percentage = &pct
		}
	}
	return beneficiary
}
