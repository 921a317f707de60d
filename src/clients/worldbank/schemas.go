package worldbank

// IndicatorPoint is one observation of a World Bank indicator. Value is a
// pointer because the API reports missing observations as null.
type IndicatorPoint struct {
	Date    string   `json:"date"`
	Value   *float64 `json:"value"`
	Country struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
}
