package controllers

import (
	"context"
	"fmt"

	"server/src/models"
	"server/src/schemas"
	"server/src/utils"
)

func (c *Controller) GenerateAnalyticsReport(ctx context.Context, holdings []models.Holding) (*schemas.AnalyticsReport, error) {
	if len(holdings) == 0 {
		return nil, utils.BadRequest("no holdings provided")
	}
	for i, holding := range holdings {
		if holding.Ticker == "" {
			return nil, utils.BadRequest(fmt.Sprintf("holding %d is missing a ticker", i))
		}
	}
	return c.AnalyticsService.GenerateReport(ctx, holdings)
}

func (c *Controller) GenerateProjections(ctx context.Context, holdings []models.Holding, params schemas.GoalParams) (*schemas.ProjectionReport, error) {
	if !params.Region.Valid() {
		return nil, utils.BadRequest(fmt.Sprintf("unknown planning region: %q", params.Region))
	}
	if !params.RiskTolerance.Valid() {
		return nil, utils.BadRequest(fmt.Sprintf("unknown risk tolerance: %q", params.RiskTolerance))
	}
	if params.HorizonYears <= 0 {
		return nil, utils.BadRequest("investment horizon must be positive")
	}
	if params.MonthlyContribution < 0 {
		return nil, utils.BadRequest("monthly contribution cannot be negative")
	}
	return c.AnalyticsService.GenerateProjections(ctx, holdings, params)
}
