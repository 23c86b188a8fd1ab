package dto

// CategorySpend is one slice of a user's monthly spend.
type CategorySpend struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type DatasetStatus struct {
	Source       string `json:"source"`
	Users        int    `json:"users"`
	Products     int    `json:"products"`
	Transactions int    `json:"transactions"`
	Interactions int    `json:"interactions"`
	LoadedAt     string `json:"loaded_at"`
}
