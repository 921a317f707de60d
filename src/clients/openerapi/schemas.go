package openerapi

// GetLatestResponse is the /v6/latest payload of the open.er-api.com
// exchange-rate API.
type GetLatestResponse struct {
	Result      string             `json:"result"`
	BaseCode    string             `json:"base_code"`
	ErrorType   string             `json:"error-type"`
	Rates       map[string]float64 `json:"rates"`
	TimeLastUTC string             `json:"time_last_update_utc"`
}
