package webapi

import (
	"time"

	"github.com/decisionlab/compass/internal/models"
)

// DecisionSummary is the API response for one decision in the list.
type DecisionSummary struct {
	ID           string    `json:"id"`
	Statement    string    `json:"statement"`
	TopChoice    string    `json:"topChoice"`
	Alternatives int       `json:"alternatives"`
	Criteria     int       `json:"criteria"`
	Risks        int       `json:"risks"`
	Threshold    float64   `json:"threshold"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DecisionDetail is the API response for a single decision with its
// full record.
type DecisionDetail struct {
	DecisionSummary
	Record models.DecisionRecord `json:"record"`
}

// SummaryResponse is the aggregate response across all decisions.
type SummaryResponse struct {
	TotalDecisions int     `json:"totalDecisions"`
	WithSimulation int     `json:"withSimulation"`
	TotalRisks     int     `json:"totalRisks"`
	AvgProbLoss    float64 `json:"avgProbLoss"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
