package taxfeed

import "server/src/schemas"

// GetTaxRatesResponse is the published tax-rate document served by the feed,
// one document per region.
type GetTaxRatesResponse struct {
	Region   string           `json:"region"`
	Updated  string           `json:"updated"`
	TaxRates schemas.TaxRates `json:"taxRates"`
}
