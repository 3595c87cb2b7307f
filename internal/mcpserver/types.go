package mcpserver

import "github.com/archfit/archfit/models"

// ScoreResponse is the structured content returned by score_architecture.
type ScoreResponse struct {
	Result          *models.ScoringResult `json:"result"`
	CatalogWarnings []string               `json:"catalog_warnings,omitempty"`
}
