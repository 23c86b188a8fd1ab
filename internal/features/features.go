// Package features reduces raw user and transaction records into one
// feature record per user.
package features

import (
	"quantumfinance/internal/models"

	"github.com/shopspring/decimal"
)

// Record is the per-user input of the rule set. It is derived from a user
// and that user's transactions and never stored.
type Record struct {
	Income      float64 `json:"income"`
	CreditScore float64 `json:"credit_score"`
	Debt        float64 `json:"debt"`
	Surplus     float64 `json:"surplus"`
	TravelSpend float64 `json:"travel_spend"`
	TravelRatio float64 `json:"travel_ratio"`
}

// TotalSpend is the monthly spend across all categories.
func (r Record) TotalSpend() float64 {
	return r.Income - r.Surplus
}

type spend struct {
	total  decimal.Decimal
	travel decimal.Decimal
}

// Aggregate builds the feature record of every user. Transactions whose
// user is not in users are dropped.
func Aggregate(users []models.User, transactions []models.Transaction) map[int]Record {
	known := make(map[int]struct{}, len(users))
	for _, u := range users {
		known[u.ID] = struct{}{}
	}

	sums := make(map[int]*spend, len(users))
	for _, tx := range transactions {
		if _, ok := known[tx.UserID]; !ok {
			continue
		}
		s, ok := sums[tx.UserID]
		if !ok {
			s = &spend{}
			sums[tx.UserID] = s
		}
		amount := decimal.NewFromFloat(tx.MonthlySpend)
		s.total = s.total.Add(amount)
		if tx.IsTravel() {
			s.travel = s.travel.Add(amount)
		}
	}

	feats := make(map[int]Record, len(users))
	for _, u := range users {
		var total, travel float64
		if s, ok := sums[u.ID]; ok {
			total = s.total.InexactFloat64()
			travel = s.travel.InexactFloat64()
		}
		feats[u.ID] = newRecord(u, total, travel)
	}
	return feats
}

func newRecord(u models.User, total, travel float64) Record {
	ratio := 0.0
	if u.Income > 0 {
		ratio = travel / u.Income
	}
	return Record{
		Income:      u.Income,
		CreditScore: u.CreditScore,
		Debt:        u.Debt,
		Surplus:     u.Income - total,
		TravelSpend: travel,
		TravelRatio: ratio,
	}
}
