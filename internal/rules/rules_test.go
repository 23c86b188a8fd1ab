package rules

import (
	"testing"

	"quantumfinance/internal/features"
)

func productIDs(recs []Recommendation) []int {
	ids := make([]int, len(recs))
	for i, r := range recs {
		ids[i] = r.ProductID
	}
	return ids
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSurplusRule(t *testing.T) {
	tests := []struct {
		name    string
		surplus float64
		want    []int
	}{
		{"well above threshold", 3000, []int{ProductLiquidCD, ProductPensionPlan}},
		{"exactly at threshold", 2000, nil},
		{"just above threshold", 2000.01, []int{ProductLiquidCD, ProductPensionPlan}},
		{"negative surplus", -50, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := productIDs(SurplusRule(features.Record{Surplus: tt.surplus}))
			if !equalIDs(got, tt.want) {
				t.Errorf("SurplusRule(surplus=%v) = %v, want %v", tt.surplus, got, tt.want)
			}
		})
	}
}

func TestSurplusRule_Justification(t *testing.T) {
	recs := SurplusRule(features.Record{Surplus: 3000})
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	want := "We offer a daily-liquidity CD because you have a monthly cash surplus of R$3000."
	if recs[0].Justification != want {
		t.Errorf("CD justification = %q, want %q", recs[0].Justification, want)
	}
	want = "Surplus of R$3000/month: a pension plan helps with long-term planning."
	if recs[1].Justification != want {
		t.Errorf("pension justification = %q, want %q", recs[1].Justification, want)
	}
}

func TestTravelRule(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  []int
	}{
		{"ten percent", 0.10, []int{ProductMilesCard, ProductTravelInsurance}},
		{"exactly nine percent", 0.09, nil},
		{"no travel", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := productIDs(TravelRule(features.Record{TravelRatio: tt.ratio}))
			if !equalIDs(got, tt.want) {
				t.Errorf("TravelRule(ratio=%v) = %v, want %v", tt.ratio, got, tt.want)
			}
		})
	}
}

func TestTravelRule_Justification(t *testing.T) {
	recs := TravelRule(features.Record{TravelRatio: 0.125})
	want := "Your travel spending is 12.5% of your income; a miles credit card maximizes the benefits."
	if recs[0].Justification != want {
		t.Errorf("miles justification = %q, want %q", recs[0].Justification, want)
	}
	want = "Frequent travel: travel insurance offers assistance and protection."
	if recs[1].Justification != want {
		t.Errorf("insurance justification = %q, want %q", recs[1].Justification, want)
	}
}

func TestDebtRule(t *testing.T) {
	tests := []struct {
		name   string
		income float64
		debt   float64
		want   []int
	}{
		{"above sixty percent", 3000, 2000, []int{ProductPayrollLoan}},
		{"exactly sixty percent", 3000, 1800, nil},
		{"low debt", 3000, 100, nil},
		{"zero income with debt", 0, 10, []int{ProductPayrollLoan}},
		{"zero income no debt", 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := productIDs(DebtRule(features.Record{Income: tt.income, Debt: tt.debt}))
			if !equalIDs(got, tt.want) {
				t.Errorf("DebtRule(income=%v, debt=%v) = %v, want %v", tt.income, tt.debt, got, tt.want)
			}
		})
	}
}

func TestDebtRule_Justification(t *testing.T) {
	recs := DebtRule(features.Record{Income: 3000, Debt: 2000})
	want := "Debts of R$2000 (>60% of income). A payroll-deductible loan can lower interest and organize your cash flow."
	if recs[0].Justification != want {
		t.Errorf("justification = %q, want %q", recs[0].Justification, want)
	}
}

func TestScoreSurplusRule(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		surplus float64
		want    []int
	}{
		{"high score and surplus", 800, 1200, []int{ProductLiquidCD}},
		{"score exactly 750", 750, 1200, []int{ProductLiquidCD}},
		{"score below 750", 749, 5000, nil},
		{"surplus exactly 1000", 800, 1000, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := productIDs(ScoreSurplusRule(features.Record{CreditScore: tt.score, Surplus: tt.surplus}))
			if !equalIDs(got, tt.want) {
				t.Errorf("ScoreSurplusRule(score=%v, surplus=%v) = %v, want %v", tt.score, tt.surplus, got, tt.want)
			}
		})
	}
}

func TestDefault_Order(t *testing.T) {
	want := []string{"surplus", "travel", "debt", "score_surplus"}
	got := NewEvaluator().Rules()
	if len(got) != len(want) {
		t.Fatalf("Rules() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Rules()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
