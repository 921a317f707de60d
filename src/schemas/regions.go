package schemas

import "server/src/utils"

// Region is the market jurisdiction a ticker belongs to, which determines the
// tax, inflation, and currency regime applied to a batch of holdings.
type Region string

const (
	RegionIndia Region = "IN"
	RegionUS    Region = "US"
)

func (r Region) Valid() bool {
	return r == RegionIndia || r == RegionUS
}

// BaseCurrency returns the reporting currency for the region.
func (r Region) BaseCurrency() string {
	if r == RegionIndia {
		return utils.CurrencyINR
	}
	return utils.CurrencyUSD
}

// CountryCode returns the ISO country code used by macro data providers.
func (r Region) CountryCode() string {
	if r == RegionIndia {
		return "IND"
	}
	return "USA"
}
