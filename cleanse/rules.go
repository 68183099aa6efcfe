package cleanse

import (
	"time"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
)

// RuleContext carries the batch-level lookups a rule may declare as input,
// plus the flag set being built in the current pass. Rules read only their
// declared inputs; the in-pass Flags field exists solely for rules that
// are explicitly composite (they consume flags computed earlier in the
// same catalog).
type RuleContext struct {
	// Flags is the flag set under construction for the current record.
	Flags models.FlagSet

	// CustomerEntryDates maps customer_id to entry date, for account rules
	// that compare against the related customer record.
	CustomerEntryDates map[string]time.Time

	// AccountNumberCounts maps account_number to its multiplicity across
	// the whole batch, for the duplicate check.
	AccountNumberCounts map[string]int
}

// Rule is one independent data-quality check. Eval must be a pure function
// of the record and the context's declared lookups, must never panic on
// malformed data, and reports the flag outcome as a boolean.
type Rule struct {
	Name string
	Eval func(rec models.Record, ctx *RuleContext) bool
}

// Catalog is an ordered rule set for one subject. Order only matters for
// composite rules, which must appear after the flags they read.
type Catalog []Rule

// Evaluate runs every rule against one record snapshot and returns the
// resulting flag set. Validation is advisory: the record is neither
// mutated nor rejected here.
func (c Catalog) Evaluate(rec models.Record, ctx *RuleContext) models.FlagSet {
	if ctx == nil {
		ctx = &RuleContext{}
	}
	flags := make(models.FlagSet, len(c))
	ctx.Flags = flags
	for _, rule := range c {
		flags.Set(rule.Name, rule.Eval(rec, ctx))
	}
	return flags
}
