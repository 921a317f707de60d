package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"server/src/clients/frankfurter"
	"server/src/clients/openerapi"
	"server/src/clients/taxfeed"
	"server/src/clients/worldbank"
	"server/src/config"
	"server/src/services"
	"server/src/utils"
	redis_utils "server/src/utils/redis"
	"server/src/worker/controllers"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	Controller *controllers.Controller
}

func NewHandler(cfg *config.Config, logger *logrus.Logger) (*Handler, error) {
	var mirror *redis_utils.RedisHandler
	if cfg.Databases.Redis.Enabled {
		handler, err := redis_utils.NewRedisHandler(cfg)
		if err != nil {
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

	controller := controllers.NewController(ratesService, logger)
	if cfg.Service.PrewarmSpec != "" {
		if err := controller.StartPrewarm(cfg.Service.PrewarmSpec); err != nil {
			return nil, err
		}
	}
	return &Handler{Controller: controller}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
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
