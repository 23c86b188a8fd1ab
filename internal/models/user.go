package models

// User is a bank customer with the static attributes the rules read.
type User struct {
	ID          int     `db:"id" json:"user_id"`
	Name        string  `db:"name" json:"name"`
	Income      float64 `db:"income" json:"income"`
	CreditScore float64 `db:"credit_score" json:"credit_score"`
	Debt        float64 `db:"debt" json:"debt"`
}
