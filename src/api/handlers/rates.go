package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetRegionRates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	region := chi.URLParam(r, "region")

	rateSet, err := h.Controller.GetRegionRates(ctx, region)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, rateSet, 200)
}
