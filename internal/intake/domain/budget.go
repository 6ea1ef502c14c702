package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// BudgetType distinguishes a fixed price from an estimated range.
type BudgetType string

const (
	BudgetFixed    BudgetType = "fixed"
	BudgetEstimate BudgetType = "estimate"
)

// BudgetSpec is the normalized form of a human-readable budget label. It is
// derived at submission time only and never written back to the draft.
type BudgetSpec struct {
	Type BudgetType `json:"budget_type"`
	Min  *int       `json:"budget_min"`
	Max  *int       `json:"budget_max"`
}

// amountPattern matches dollar amounts with optional US-style comma grouping.
var amountPattern = regexp.MustCompile(`\d[\d,]*`)

// NormalizeBudget parses a budget label such as "Under $500", "Over $10,000"
// or "$1,000 - $2,500" into a BudgetSpec.
//
// Keyword matching is case-insensitive. Labels without an under/over keyword
// are read as a range when two or more amounts are present (extra amounts are
// ignored), as a fixed price when exactly one is present, and as an open
// estimate when none are.
func NormalizeBudget(label string) BudgetSpec {
	spec := BudgetSpec{Type: BudgetEstimate}

	amounts := parseAmounts(label)
	lower := strings.ToLower(label)

	switch {
	case strings.Contains(lower, "under"):
		if len(amounts) > 0 {
			spec.Max = &amounts[0]
		}
	case strings.Contains(lower, "over"):
		if len(amounts) > 0 {
			spec.Min = &amounts[0]
		}
	case len(amounts) >= 2:
		spec.Min = &amounts[0]
		spec.Max = &amounts[1]
	case len(amounts) == 1:
		spec.Min = &amounts[0]
		spec.Type = BudgetFixed
	}

	return spec
}

func parseAmounts(label string) []int {
	tokens := amountPattern.FindAllString(label, -1)
	amounts := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.Atoi(strings.ReplaceAll(tok, ",", ""))
		if err != nil {
			continue
		}
		amounts = append(amounts, n)
	}
	return amounts
}
