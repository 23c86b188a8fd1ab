// Package rules turns a user's feature record into product recommendations.
//
// The rule set is a fixed, ordered list of pure functions. Each rule reads
// the same immutable features.Record and may emit zero or more
// recommendations; none sees the output of another. The Evaluator runs them
// in order and keeps the first recommendation per product.
package rules

import (
	"fmt"

	"quantumfinance/internal/features"
)

// Product ids of the catalogue entries the rules recommend.
const (
	ProductPayrollLoan     = 102
	ProductLiquidCD        = 103
	ProductTravelInsurance = 104
	ProductPensionPlan     = 106
	ProductMilesCard       = 107
)

// Thresholds of the rule set.
const (
	HighSurplus        = 2000.0
	TravelRatioTrigger = 0.09
	DebtIncomeLimit    = 0.6
	HighCreditScore    = 750.0
	ModerateSurplus    = 1000.0
)

// Recommendation pairs a product with the reason it was picked.
type Recommendation struct {
	ProductID     int    `json:"product_id"`
	Justification string `json:"justification"`
}

// Rule is a named predicate-and-action over a feature record.
type Rule struct {
	Name  string
	Apply func(f features.Record) []Recommendation
}

// Default returns the rule set in evaluation order.
func Default() []Rule {
	return []Rule{
		{Name: "surplus", Apply: SurplusRule},
		{Name: "travel", Apply: TravelRule},
		{Name: "debt", Apply: DebtRule},
		{Name: "score_surplus", Apply: ScoreSurplusRule},
	}
}

// SurplusRule suggests parking a high monthly surplus.
func SurplusRule(f features.Record) []Recommendation {
	if f.Surplus <= HighSurplus {
		return nil
	}
	return []Recommendation{
		{
			ProductID:     ProductLiquidCD,
			Justification: fmt.Sprintf("We offer a daily-liquidity CD because you have a monthly cash surplus of R$%.0f.", f.Surplus),
		},
		{
			ProductID:     ProductPensionPlan,
			Justification: fmt.Sprintf("Surplus of R$%.0f/month: a pension plan helps with long-term planning.", f.Surplus),
		},
	}
}

// TravelRule fires when travel takes more than 9% of income.
func TravelRule(f features.Record) []Recommendation {
	if f.TravelRatio <= TravelRatioTrigger {
		return nil
	}
	return []Recommendation{
		{
			ProductID:     ProductMilesCard,
			Justification: fmt.Sprintf("Your travel spending is %.1f%% of your income; a miles credit card maximizes the benefits.", f.TravelRatio*100),
		},
		{
			ProductID:     ProductTravelInsurance,
			Justification: "Frequent travel: travel insurance offers assistance and protection.",
		},
	}
}

// DebtRule fires when debt exceeds 60% of income.
func DebtRule(f features.Record) []Recommendation {
	if f.Debt <= f.Income*DebtIncomeLimit {
		return nil
	}
	return []Recommendation{
		{
			ProductID:     ProductPayrollLoan,
			Justification: fmt.Sprintf("Debts of R$%.0f (>60%% of income). A payroll-deductible loan can lower interest and organize your cash flow.", f.Debt),
		},
	}
}

// ScoreSurplusRule suggests liquid fixed income to good payers with some
// surplus. When SurplusRule already recommended the CD, deduplication keeps
// that one.
func ScoreSurplusRule(f features.Record) []Recommendation {
	if f.CreditScore < HighCreditScore || f.Surplus <= ModerateSurplus {
		return nil
	}
	return []Recommendation{
		{
			ProductID:     ProductLiquidCD,
			Justification: "High score and monthly surplus: liquid fixed income fits your profile.",
		},
	}
}
