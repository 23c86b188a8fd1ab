package rules

import (
	"errors"
	"reflect"
	"testing"

	"quantumfinance/internal/features"
	"quantumfinance/internal/models"
)

const genericCD = "High score and monthly surplus: liquid fixed income fits your profile."

func evaluate(t *testing.T, users []models.User, txs []models.Transaction, userID int) []Recommendation {
	t.Helper()
	recs, err := NewEvaluator().Evaluate(userID, features.Aggregate(users, txs))
	if err != nil {
		t.Fatalf("Evaluate(%d) err=%v", userID, err)
	}
	return recs
}

func contains(recs []Recommendation, productID int) bool {
	for _, r := range recs {
		if r.ProductID == productID {
			return true
		}
	}
	return false
}

func TestEvaluate_ScenarioHighSurplus(t *testing.T) {
	users := []models.User{{ID: 1, Income: 5000, CreditScore: 600}}
	txs := []models.Transaction{
		{UserID: 1, Category: "food", MonthlySpend: 1500},
		{UserID: 1, Category: "rent", MonthlySpend: 500},
	}

	recs := evaluate(t, users, txs, 1)

	want := []int{ProductLiquidCD, ProductPensionPlan}
	if got := productIDs(recs); !equalIDs(got, want) {
		t.Fatalf("products = %v, want %v", got, want)
	}
	if recs[0].Justification != "We offer a daily-liquidity CD because you have a monthly cash surplus of R$3000." {
		t.Errorf("CD justification = %q", recs[0].Justification)
	}
}

func TestEvaluate_ScenarioTravel(t *testing.T) {
	users := []models.User{{ID: 1, Income: 4000, CreditScore: 600}}
	txs := []models.Transaction{
		{UserID: 1, Category: "viagens", MonthlySpend: 400},
		{UserID: 1, Category: "rent", MonthlySpend: 2000},
	}

	recs := evaluate(t, users, txs, 1)

	want := []int{ProductMilesCard, ProductTravelInsurance}
	if got := productIDs(recs); !equalIDs(got, want) {
		t.Fatalf("products = %v, want %v", got, want)
	}
	if recs[0].Justification != "Your travel spending is 10.0% of your income; a miles credit card maximizes the benefits." {
		t.Errorf("miles justification = %q", recs[0].Justification)
	}
}

func TestEvaluate_ScenarioDebt(t *testing.T) {
	users := []models.User{{ID: 1, Income: 3000, CreditScore: 600, Debt: 2000}}
	txs := []models.Transaction{{UserID: 1, Category: "rent", MonthlySpend: 2500}}

	recs := evaluate(t, users, txs, 1)

	want := []int{ProductPayrollLoan}
	if got := productIDs(recs); !equalIDs(got, want) {
		t.Fatalf("products = %v, want %v", got, want)
	}
}

func TestEvaluate_ScenarioScoreOnly(t *testing.T) {
	feats := map[int]features.Record{
		1: {Income: 1000, CreditScore: 800, Surplus: 1200},
	}

	recs, err := NewEvaluator().Evaluate(1, feats)
	if err != nil {
		t.Fatalf("Evaluate() err=%v", err)
	}

	want := []Recommendation{{ProductID: ProductLiquidCD, Justification: genericCD}}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("Evaluate() = %+v, want %+v", recs, want)
	}
}

func TestEvaluate_ScenarioZeroIncome(t *testing.T) {
	users := []models.User{{ID: 1, Income: 0, CreditScore: 800}}
	txs := []models.Transaction{{UserID: 1, Category: "travel", MonthlySpend: 900}}

	feats := features.Aggregate(users, txs)
	if feats[1].TravelRatio != 0 {
		t.Fatalf("TravelRatio = %v, want 0", feats[1].TravelRatio)
	}
	if feats[1].Surplus != -900 {
		t.Fatalf("Surplus = %v, want -900", feats[1].Surplus)
	}

	recs := evaluate(t, users, txs, 1)
	if contains(recs, ProductMilesCard) || contains(recs, ProductTravelInsurance) {
		t.Errorf("travel products recommended with zero income: %+v", recs)
	}
	if contains(recs, ProductLiquidCD) {
		t.Errorf("surplus products recommended with negative surplus: %+v", recs)
	}
}

func TestEvaluate_SuppressesSecondCD(t *testing.T) {
	feats := map[int]features.Record{
		1: {Income: 6000, CreditScore: 800, Surplus: 2500},
	}

	recs, err := NewEvaluator().Evaluate(1, feats)
	if err != nil {
		t.Fatalf("Evaluate() err=%v", err)
	}

	count := 0
	for _, r := range recs {
		if r.ProductID == ProductLiquidCD {
			count++
			if r.Justification == genericCD {
				t.Error("CD kept the generic justification, want the surplus one")
			}
		}
	}
	if count != 1 {
		t.Errorf("liquid CD appears %d times, want 1", count)
	}
}

func TestEvaluate_AllRulesFire(t *testing.T) {
	feats := map[int]features.Record{
		1: {Income: 10000, CreditScore: 800, Debt: 7000, Surplus: 4000, TravelSpend: 1500, TravelRatio: 0.15},
	}

	recs, err := NewEvaluator().Evaluate(1, feats)
	if err != nil {
		t.Fatalf("Evaluate() err=%v", err)
	}

	want := []int{ProductLiquidCD, ProductPensionPlan, ProductMilesCard, ProductTravelInsurance, ProductPayrollLoan}
	if got := productIDs(recs); !equalIDs(got, want) {
		t.Errorf("products = %v, want %v", got, want)
	}
}

func TestEvaluate_NoRuleFires(t *testing.T) {
	feats := map[int]features.Record{
		1: {Income: 3000, CreditScore: 500, Surplus: 200},
	}

	recs, err := NewEvaluator().Evaluate(1, feats)
	if err != nil {
		t.Fatalf("Evaluate() err=%v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("Evaluate() = %#v, want empty non-nil slice", recs)
	}
}

func TestEvaluate_UnknownUser(t *testing.T) {
	_, err := NewEvaluator().Evaluate(42, map[int]features.Record{})
	if !errors.Is(err, ErrUnknownUser) {
		t.Errorf("Evaluate() err=%v, want ErrUnknownUser", err)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	feats := map[int]features.Record{
		7: {Income: 8000, CreditScore: 760, Debt: 6000, Surplus: 2100, TravelRatio: 0.2},
	}
	e := NewEvaluator()

	first, err := e.Evaluate(7, feats)
	if err != nil {
		t.Fatalf("Evaluate() err=%v", err)
	}
	second, err := e.Evaluate(7, feats)
	if err != nil {
		t.Fatalf("Evaluate() err=%v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second evaluation differs:\n%+v\n%+v", first, second)
	}
}

func TestNewEvaluator_CustomRules(t *testing.T) {
	always := Rule{Name: "always", Apply: func(features.Record) []Recommendation {
		return []Recommendation{{ProductID: 1, Justification: "a"}, {ProductID: 1, Justification: "b"}}
	}}

	recs := NewEvaluator(always).EvaluateRecord(features.Record{})
	want := []Recommendation{{ProductID: 1, Justification: "a"}}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("EvaluateRecord() = %+v, want %+v", recs, want)
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name string
		in   []Recommendation
		want []Recommendation
	}{
		{
			name: "empty",
			in:   nil,
			want: []Recommendation{},
		},
		{
			name: "keeps first justification and order",
			in: []Recommendation{
				{ProductID: 103, Justification: "first"},
				{ProductID: 106, Justification: "pension"},
				{ProductID: 103, Justification: "second"},
				{ProductID: 102, Justification: "loan"},
			},
			want: []Recommendation{
				{ProductID: 103, Justification: "first"},
				{ProductID: 106, Justification: "pension"},
				{ProductID: 102, Justification: "loan"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedupe(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dedupe() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
