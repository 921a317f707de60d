package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"server/src/schemas"
	"server/src/utils"
)

func (h *Handler) GenerateAnalyticsReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var request schemas.AnalyticsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body: "+err.Error()))
		return
	}

	report, err := h.Controller.GenerateAnalyticsReport(ctx, request.Holdings)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, report, 200)
}

func (h *Handler) GenerateProjections(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var request schemas.ProjectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body: "+err.Error()))
		return
	}

	report, err := h.Controller.GenerateProjections(ctx, request.Holdings, request.Goals)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, report, 200)
}
