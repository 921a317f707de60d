package controllers

import (
	"context"

	"server/src/models"
	"server/src/schemas"
	"server/src/services"
)

type IController interface {
	GenerateAnalyticsReport(ctx context.Context, holdings []models.Holding) (*schemas.AnalyticsReport, error)
	GenerateProjections(ctx context.Context, holdings []models.Holding, params schemas.GoalParams) (*schemas.ProjectionReport, error)
	GetRegionRates(ctx context.Context, region string) (*schemas.RateSet, error)
}

type Controller struct {
	AnalyticsService services.AnalyticsServiceI
	RatesService     services.RatesServiceI
}

func NewController(analyticsService services.AnalyticsServiceI, ratesService services.RatesServiceI) *Controller {
	return &Controller{
		AnalyticsService: analyticsService,
		RatesService:     ratesService,
	}
}
