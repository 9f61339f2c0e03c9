package transport

type CartLine struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity uint    `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
	Image    string  `json:"image"`
}

type CartResponse struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

type RemoveResponse struct {
	Success   bool `json:"success"`
	Remaining uint `json:"remaining"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

type SearchResponse struct {
	Total int64 `json:"total"`
	Items any   `json:"items"`
}
