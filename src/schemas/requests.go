package schemas

import "server/src/models"

// AnalyticsRequest is the body of an analytics report request: the holdings
// batch as supplied by the ingestion side.
type AnalyticsRequest struct {
	Holdings []models.Holding `json:"holdings"`
}

// ProjectionsRequest is the body of a goal projection request.
type ProjectionsRequest struct {
	Holdings []models.Holding `json:"holdings"`
	Goals    GoalParams       `json:"goals"`
}
