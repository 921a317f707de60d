package controllers

import (
	"context"
	"fmt"

	"server/src/schemas"
	"server/src/utils"
)

// GetRegionRates exposes the resolved rate snapshot bundle for one region,
// mainly for auditing what the analytics actually used.
func (c *Controller) GetRegionRates(ctx context.Context, region string) (*schemas.RateSet, error) {
	parsed := schemas.Region(region)
	if !parsed.Valid() {
		return nil, utils.BadRequest(fmt.Sprintf("unknown region: %q", region))
	}
	return c.RatesService.GetRateSet(ctx, parsed)
}
