package dto

type UserSummary struct {
	ID   int    `json:"user_id"`
	Name string `json:"name"`
}

// ProfileResponse is the left-hand panel of the dashboard.
type ProfileResponse struct {
	UserID         int     `json:"user_id"`
	Name           string  `json:"name"`
	Income         float64 `json:"income"`
	CreditScore    float64 `json:"credit_score"`
	Debt           float64 `json:"debt"`
	TotalSpend     float64 `json:"total_spend"`
	Surplus        float64 `json:"surplus"`
	TravelSpend    float64 `json:"travel_spend"`
	TravelRatioPct float64 `json:"travel_ratio_pct"`
}
