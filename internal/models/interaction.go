package models

// Interaction records that a user touched a product (viewed, bought, ...).
// No rule reads interactions yet.
type Interaction struct {
	UserID    int    `db:"user_id" json:"user_id"`
	ProductID int    `db:"product_id" json:"product_id"`
	Kind      string `db:"kind" json:"kind,omitempty"`
}
