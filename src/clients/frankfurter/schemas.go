package frankfurter

// GetLatestResponse is the /latest payload of the Frankfurter exchange-rate
// API.
type GetLatestResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}
