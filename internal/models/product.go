package models

type Product struct {
	ID   int    `db:"id" json:"product_id"`
	Name string `db:"name" json:"name"`
}
