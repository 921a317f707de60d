package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"server/src/api/controllers"
	"server/src/clients/frankfurter"
	"server/src/clients/openerapi"
	"server/src/clients/quotes"
	"server/src/clients/taxfeed"
	"server/src/clients/worldbank"
	"server/src/config"
	"server/src/services"
	"server/src/utils"
	redis_utils "server/src/utils/redis"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	Controller controllers.IController
}

func NewHandler(cfg *config.Config, logger *logrus.Logger) (*Handler, error) {
	var mirror *redis_utils.RedisHandler
	if cfg.Databases.Redis.Enabled {
		handler, err := redis_utils.NewRedisHandler(cfg)
		if err != nil {
			// The mirror is an optimization: run without it rather than fail.
			logger.Warnf("redis unavailable, running without snapshot mirror: %v", err)
		} else {
			mirror = handler
		}
	}

	ratesService := services.NewRatesService(
		cfg,
		taxfeed.NewClient(cfg),
		worldbank.NewClient(cfg),
		frankfurter.NewClient(cfg),
		openerapi.NewClient(cfg),
		mirror,
	)
	analyticsService := services.NewAnalyticsService(
		services.NewRegionService(),
		ratesService,
		services.NewValuationService(),
		services.NewSeriesService(),
		services.NewSimulationService(nil, services.DefaultSimulationRuns),
		services.NewAllocationService(),
		quotes.NewClient(cfg),
	)
	controller := controllers.NewController(analyticsService, ratesService)
	return &Handler{Controller: controller}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	var mixedErr *services.MixedRegionError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	case errors.As(err, &mixedErr):
		h.respond(w, nil, map[string]interface{}{
			"error":           mixedErr.Error(),
			"tickersByRegion": mixedErr.TickersByRegion,
		}, http.StatusUnprocessableEntity)
	case errors.Is(err, services.ErrRatesUnavailable):
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusServiceUnavailable)
	case errors.As(err, &httpErr):
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	case err != nil:
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	default:
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}
