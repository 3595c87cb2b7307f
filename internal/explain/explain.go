// Package explain implements the Explanation Builder (spec §4.7):
// matched/mismatched dimension detail, assumptions, and the overall
// confidence verdict, built entirely from recorded sub-scores so every
// recommendation is reconstructable from its inputs.
package explain

import (
	"github.com/archfit/archfit/internal/scoring"
	"github.com/archfit/archfit/models"
)

// matchThreshold is the normalized sub-score at or above which a
// dimension counts as "matched" rather than "mismatched".
const matchThreshold = 0.7

// BuildRecommendation assembles the full explanation for one scored,
// eligible entry.
func BuildRecommendation(entry *models.CatalogEntry, scored scoring.Scored, in *models.Intent) models.Recommendation {
	var matched []models.MatchedDimension
	var mismatched []models.MismatchedDimension

	for _, d := range scored.Dimensions {
		contribution := d.Value * d.Weight
		if d.Value >= matchThreshold {
			matched = append(matched, models.MatchedDimension{
				Dimension:    d.Name,
				Contribution: contribution,
				Evidence:     d.Evidence,
			})
		} else {
			mismatched = append(mismatched, models.MismatchedDimension{
				Dimension: d.Name,
				Gap:       d.Evidence,
				Cost:      d.Weight - contribution,
			})
		}
	}

	return models.Recommendation{
		ArchitectureID:       entry.ArchitectureID,
		Name:                 entry.Name,
		LikelihoodScore:      scored.LikelihoodScore,
		CatalogQuality:       entry.CatalogQuality,
		MatchedDimensions:    matched,
		MismatchedDimensions: mismatched,
		Assumptions:          in.Assumptions(),
		LearnURL:             entry.LearnURL,
	}
}

// OverallConfidence applies the table in spec §4.7 to the primary
// (highest-ranked) recommendation.
func OverallConfidence(top scoring.Scored, in *models.Intent) models.ConfidenceLevel {
	lowSignals := in.LowSignalCount()
	assumptions := len(in.Assumptions())

	switch {
	case top.LikelihoodScore >= 75 && top.ConfidencePenalty < 0.10 && lowSignals <= 1 && assumptions <= 2:
		return models.OverallHigh
	case top.LikelihoodScore >= 50 && top.ConfidencePenalty < 0.20 && lowSignals <= 3:
		return models.OverallMedium
	default:
		return models.OverallLow
	}
}

// BuildSummary produces the human-facing digest for a completed run.
// recommendations must already be ranked (highest first); it is safe to
// call with an empty slice (no eligible architectures).
func BuildSummary(recommendations []models.Recommendation, top scoring.Scored, topIntent *models.Intent) models.Summary {
	if len(recommendations) == 0 {
		return models.Summary{
			PrimaryRecommendation: "",
			ConfidenceLevel:       models.OverallLow,
			KeyDrivers:            nil,
			KeyRisks:              []string{"no eligible architectures matched the application context"},
		}
	}

	primary := recommendations[0]
	var drivers []string
	for _, m := range primary.MatchedDimensions {
		drivers = append(drivers, m.Dimension)
		if len(drivers) == 3 {
			break
		}
	}

	var risks []string
	for _, m := range primary.MismatchedDimensions {
		risks = append(risks, m.Dimension)
		if len(risks) == 3 {
			break
		}
	}

	return models.Summary{
		PrimaryRecommendation: primary.ArchitectureID,
		ConfidenceLevel:       OverallConfidence(top, topIntent),
		KeyDrivers:            drivers,
		KeyRisks:              risks,
	}
}
