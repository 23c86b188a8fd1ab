package features

import (
	"testing"

	"quantumfinance/internal/models"
)

func TestAggregate(t *testing.T) {
	users := []models.User{
		{ID: 1, Income: 5000, CreditScore: 700, Debt: 100},
		{ID: 2, Income: 4000, CreditScore: 650},
		{ID: 3, Income: 2500, CreditScore: 800, Debt: 50},
	}
	transactions := []models.Transaction{
		{UserID: 1, Category: "food", MonthlySpend: 1200},
		{UserID: 1, Category: "rent", MonthlySpend: 800},
		{UserID: 2, Category: "viagens", MonthlySpend: 300},
		{UserID: 2, Category: "travel", MonthlySpend: 100},
		{UserID: 2, Category: "food", MonthlySpend: 1000},
		{UserID: 99, Category: "food", MonthlySpend: 5000},
	}

	feats := Aggregate(users, transactions)

	if len(feats) != len(users) {
		t.Fatalf("len(feats) = %d, want %d", len(feats), len(users))
	}

	tests := []struct {
		name   string
		userID int
		want   Record
	}{
		{
			name:   "spend without travel",
			userID: 1,
			want:   Record{Income: 5000, CreditScore: 700, Debt: 100, Surplus: 3000},
		},
		{
			name:   "both travel labels count",
			userID: 2,
			want:   Record{Income: 4000, CreditScore: 650, Surplus: 2600, TravelSpend: 400, TravelRatio: 0.1},
		},
		{
			name:   "no transactions",
			userID: 3,
			want:   Record{Income: 2500, CreditScore: 800, Debt: 50, Surplus: 2500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := feats[tt.userID]
			if !ok {
				t.Fatalf("no record for user %d", tt.userID)
			}
			if got != tt.want {
				t.Errorf("feats[%d] = %+v, want %+v", tt.userID, got, tt.want)
			}
		})
	}

	if _, ok := feats[99]; ok {
		t.Error("unknown user 99 should not get a record")
	}
}

func TestAggregate_NonPositiveIncome(t *testing.T) {
	users := []models.User{
		{ID: 1, Income: 0},
		{ID: 2, Income: -100},
	}
	transactions := []models.Transaction{
		{UserID: 1, Category: "travel", MonthlySpend: 500},
		{UserID: 2, Category: "viagens", MonthlySpend: 50},
	}

	feats := Aggregate(users, transactions)

	for id, rec := range feats {
		if rec.TravelRatio != 0 {
			t.Errorf("user %d TravelRatio = %v, want 0", id, rec.TravelRatio)
		}
	}
	if feats[1].Surplus != -500 {
		t.Errorf("user 1 Surplus = %v, want -500", feats[1].Surplus)
	}
	if feats[1].TravelSpend != 500 {
		t.Errorf("user 1 TravelSpend = %v, want 500", feats[1].TravelSpend)
	}
}

func TestAggregate_CentsAddExactly(t *testing.T) {
	users := []models.User{{ID: 1, Income: 1}}
	transactions := []models.Transaction{
		{UserID: 1, Category: "travel", MonthlySpend: 0.1},
		{UserID: 1, Category: "travel", MonthlySpend: 0.2},
	}

	rec := Aggregate(users, transactions)[1]
	if rec.TravelSpend != 0.3 {
		t.Errorf("TravelSpend = %v, want 0.3", rec.TravelSpend)
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil, nil); len(got) != 0 {
		t.Errorf("Aggregate(nil, nil) = %v, want empty", got)
	}
}

func TestRecord_TotalSpend(t *testing.T) {
	r := Record{Income: 3000, Surplus: 1200}
	if got := r.TotalSpend(); got != 1800 {
		t.Errorf("TotalSpend() = %v, want 1800", got)
	}
}
