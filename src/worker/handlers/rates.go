package handlers

import (
	"context"
	"net/http"
	"time"
)

// RefreshRates forces an immediate pre-warm of every rate cache.
func (h *Handler) RefreshRates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.Controller.RefreshRates(ctx); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]string{"status": "refreshed"}, 200)
}

// GetSchedulers lists the registered background tasks and their next run.
func (h *Handler) GetSchedulers(w http.ResponseWriter, r *http.Request) {
	tasks := h.Controller.GetSchedulers()

	nextRuns := make(map[string]string, len(tasks))
	for name, task := range tasks {
		nextRuns[name] = task.NextRun()
	}
	h.respond(w, r, nextRuns, 200)
}
