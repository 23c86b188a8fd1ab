package models

// CategoryTravel and CategoryTravelPT are the labels counted as travel spend.
const (
	CategoryTravel   = "travel"
	CategoryTravelPT = "viagens"
)

// Transaction is one spending category line of a user's monthly budget.
type Transaction struct {
	UserID       int     `db:"user_id" json:"user_id"`
	Category     string  `db:"category" json:"category"`
	MonthlySpend float64 `db:"monthly_spend" json:"monthly_spend"`
}

// IsTravel matches the category label exactly.
func (t Transaction) IsTravel() bool {
	return t.Category == CategoryTravel || t.Category == CategoryTravelPT
}
