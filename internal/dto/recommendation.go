package dto

type RecommendationItem struct {
	ProductID     int    `json:"product_id"`
	ProductName   string `json:"product_name"`
	Justification string `json:"justification"`
}

type RecommendationsResponse struct {
	UserID  int                  `json:"user_id"`
	Items   []RecommendationItem `json:"items"`
	Message string               `json:"message,omitempty"`
}

type AdviceResponse struct {
	UserID int    `json:"user_id"`
	Advice string `json:"advice"`
}
