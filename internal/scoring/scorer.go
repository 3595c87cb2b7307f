// Package scoring implements the Scorer (spec §4.6): per-dimension
// weighted scoring, catalog-quality weighting, and the confidence
// penalty, producing a final score in [0, 100] plus the per-dimension
// detail the Explanation Builder needs.
package scoring

import (
	"math"
	"strings"

	"github.com/archfit/archfit/internal/normalizer"
	"github.com/archfit/archfit/models"
)

// DimensionScore is one weighted sub-score, kept around so the caller can
// build matched/mismatched explanations without recomputing anything.
type DimensionScore struct {
	Name     string
	Value    float64 // normalized to [0,1]
	Weight   float64
	Evidence string
}

// Scored is the full scoring detail for one eligible entry.
type Scored struct {
	ArchitectureID    string
	LikelihoodScore   int
	BaseWeighted      float64
	QualityWeight     float64
	ConfidencePenalty float64
	Dimensions        []DimensionScore
}

// Score computes the final score for one eligible entry against the
// derived intent, per spec §4.6.
func Score(entry *models.CatalogEntry, in *models.Intent, n *normalizer.Normalized, cfg Config) Scored {
	dims := []DimensionScore{
		scoreTreatmentAlignment(entry, in, cfg.Weights.TreatmentAlignment),
		scorePlatformCompatibility(entry, n, cfg.Weights.PlatformCompatibility),
		scoreAppModRecommended(entry, n, cfg.Weights.AppModRecommended),
		scoreRuntimeModelCompatibility(entry, in, cfg.Weights.RuntimeModelCompatibility),
		scoreServiceOverlap(entry, n, cfg.Weights.ServiceOverlap),
		scoreAvailabilityAlignment(entry, in, cfg.Weights.AvailabilityAlignment),
		scoreOperatingModelFit(entry, in, cfg.Weights.OperatingModelFit),
		scoreComplexityTolerance(entry, n, cfg.Weights.ComplexityTolerance),
		scoreBrowseTagOverlap(entry, in, cfg.Weights.BrowseTagOverlap),
		scoreCostPostureAlignment(entry, in, cfg.Weights.CostPostureAlignment),
	}

	baseWeighted := 0.0
	for _, d := range dims {
		baseWeighted += d.Value * d.Weight
	}

	qualityWeight, ok := cfg.QualityWeights[string(entry.CatalogQuality)]
	if !ok {
		qualityWeight = 0
	}

	penalty := in.ConfidencePenalty()
	if penalty > cfg.MaxPenalty {
		penalty = cfg.MaxPenalty
	}

	final := 100 * baseWeighted * qualityWeight * (1 - penalty)

	return Scored{
		ArchitectureID:    entry.ArchitectureID,
		LikelihoodScore:   int(math.Round(final)),
		BaseWeighted:      baseWeighted,
		QualityWeight:     qualityWeight,
		ConfidencePenalty: penalty,
		Dimensions:        dims,
	}
}

// Less orders two scored entries for final ranking: higher score first,
// then better (lower) catalog-quality rank, then lexicographic
// architecture_id, per spec §4.6's determinism requirement.
func Less(a, b Scored, aQuality, bQuality models.CatalogQuality) bool {
	if a.LikelihoodScore != b.LikelihoodScore {
		return a.LikelihoodScore > b.LikelihoodScore
	}
	if aQuality.Rank() != bQuality.Rank() {
		return aQuality.Rank() < bQuality.Rank()
	}
	return a.ArchitectureID < b.ArchitectureID
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func scoreTreatmentAlignment(entry *models.CatalogEntry, in *models.Intent, w float64) DimensionScore {
	if in.Treatment.Value == "" || len(entry.SupportedTreatments) == 0 {
		return DimensionScore{Name: "treatment_alignment", Value: 0.5, Weight: w, Evidence: "no declared treatment to compare"}
	}
	if contains(entry.SupportedTreatments, in.Treatment.Value) {
		return DimensionScore{Name: "treatment_alignment", Value: 1.0, Weight: w, Evidence: "supports " + string(in.Treatment.Value)}
	}
	return DimensionScore{Name: "treatment_alignment", Value: 0.0, Weight: w, Evidence: "does not support " + string(in.Treatment.Value)}
}

func scorePlatformCompatibility(entry *models.CatalogEntry, n *normalizer.Normalized, w float64) DimensionScore {
	statusByPlatform := make(map[string]models.AppModStatus, len(n.AppModResults))
	for _, r := range n.AppModResults {
		statusByPlatform[strings.ToLower(r.Platform)] = r.Status
	}
	value, evidence := 0.0, "no App-Mod platform data"
	for _, svc := range entry.CoreServices {
		status, ok := statusByPlatform[strings.ToLower(svc)]
		if !ok {
			continue
		}
		switch status {
		case models.AppModSupported:
			return DimensionScore{Name: "platform_compatibility", Value: 1.0, Weight: w, Evidence: svc + " is App-Mod Supported"}
		case models.AppModReady:
			if value < 0.5 {
				value, evidence = 0.5, svc + " is App-Mod Ready"
			}
		}
	}
	return DimensionScore{Name: "platform_compatibility", Value: value, Weight: w, Evidence: evidence}
}

func scoreAppModRecommended(entry *models.CatalogEntry, n *normalizer.Normalized, w float64) DimensionScore {
	for _, r := range n.AppModResults {
		for _, target := range r.RecommendedTargets {
			if containsFold(entry.CoreServices, target) || containsFold(entry.SupportingServices, target) {
				return DimensionScore{Name: "app_mod_recommended", Value: 1.0, Weight: w, Evidence: "App-Mod recommends " + target}
			}
		}
	}
	return DimensionScore{Name: "app_mod_recommended", Value: 0.0, Weight: w, Evidence: "no App-Mod recommended target matched"}
}

func containsFold(list []string, v string) bool {
	for _, x := range list {
		if strings.EqualFold(x, v) {
			return true
		}
	}
	return false
}

func scoreRuntimeModelCompatibility(entry *models.CatalogEntry, in *models.Intent, w float64) DimensionScore {
	if len(entry.ExpectedRuntimeModels) == 0 {
		return DimensionScore{Name: "runtime_model_compatibility", Value: 0.5, Weight: w, Evidence: "entry declares no runtime model constraint"}
	}
	if contains(entry.ExpectedRuntimeModels, in.LikelyRuntimeModel.Value) {
		return DimensionScore{Name: "runtime_model_compatibility", Value: 1.0, Weight: w, Evidence: "supports " + string(in.LikelyRuntimeModel.Value)}
	}
	return DimensionScore{Name: "runtime_model_compatibility", Value: 0.0, Weight: w, Evidence: "does not support " + string(in.LikelyRuntimeModel.Value)}
}

func scoreServiceOverlap(entry *models.CatalogEntry, n *normalizer.Normalized, w float64) DimensionScore {
	core := entry.CoreServices
	if len(core) == 0 {
		return DimensionScore{Name: "service_overlap", Value: 0.0, Weight: w, Evidence: "entry declares no core services"}
	}
	overlap := 0
	for _, svc := range core {
		if _, ok := n.ApprovedServices[svc]; ok {
			overlap++
			continue
		}
		for _, approved := range n.ApprovedServices {
			if strings.EqualFold(approved, svc) {
				overlap++
				break
			}
		}
	}
	value := float64(overlap) / float64(maxInt(1, len(core)))
	return DimensionScore{Name: "service_overlap", Value: value, Weight: w, Evidence: "approved services overlap core_services"}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func scoreAvailabilityAlignment(entry *models.CatalogEntry, in *models.Intent, w float64) DimensionScore {
	if len(entry.AvailabilityModels) == 0 {
		return DimensionScore{Name: "availability_alignment", Value: 0.5, Weight: w, Evidence: "entry declares no availability model"}
	}
	if contains(entry.AvailabilityModels, in.AvailabilityRequirement.Value) {
		return DimensionScore{Name: "availability_alignment", Value: 1.0, Weight: w, Evidence: "supports " + string(in.AvailabilityRequirement.Value)}
	}
	return DimensionScore{Name: "availability_alignment", Value: 0.0, Weight: w, Evidence: "does not support " + string(in.AvailabilityRequirement.Value)}
}

func scoreOperatingModelFit(entry *models.CatalogEntry, in *models.Intent, w float64) DimensionScore {
	gap := entry.OperatingModelRequired.Rank() - in.OperationalMaturityEstimate.Value.Rank()
	switch {
	case gap == 0:
		return DimensionScore{Name: "operating_model_fit", Value: 1.0, Weight: w, Evidence: "exact operating model match"}
	case gap == 1:
		return DimensionScore{Name: "operating_model_fit", Value: 0.7, Weight: w, Evidence: "one level above team maturity"}
	case gap < 0:
		return DimensionScore{Name: "operating_model_fit", Value: 1.0, Weight: w, Evidence: "entry requires less maturity than team has"}
	default:
		return DimensionScore{Name: "operating_model_fit", Value: 0.0, Weight: w, Evidence: "operating model gap exceeds tolerance"}
	}
}

func scoreComplexityTolerance(entry *models.CatalogEntry, n *normalizer.Normalized, w float64) DimensionScore {
	lowCriticality := n.BusinessCriticality.Value == models.CriticalityLow
	switch entry.Complexity {
	case models.ComplexityHigh:
		if lowCriticality {
			return DimensionScore{Name: "complexity_tolerance", Value: 0.0, Weight: w, Evidence: "high complexity against low-criticality app"}
		}
		return DimensionScore{Name: "complexity_tolerance", Value: 0.6, Weight: w, Evidence: "high complexity"}
	case models.ComplexityMedium:
		return DimensionScore{Name: "complexity_tolerance", Value: 0.8, Weight: w, Evidence: "medium complexity"}
	case models.ComplexityLow:
		return DimensionScore{Name: "complexity_tolerance", Value: 1.0, Weight: w, Evidence: "low complexity"}
	default:
		return DimensionScore{Name: "complexity_tolerance", Value: 0.5, Weight: w, Evidence: "complexity not declared"}
	}
}

func scoreBrowseTagOverlap(entry *models.CatalogEntry, in *models.Intent, w float64) DimensionScore {
	if len(entry.BrowseTags) == 0 {
		return DimensionScore{Name: "browse_tag_overlap", Value: 0.0, Weight: w, Evidence: "entry declares no browse tags"}
	}
	want := map[string]bool{}
	switch in.NetworkExposure.Value {
	case models.ExposureExternal:
		want["internet-facing"] = true
		want["waf"] = true
	case models.ExposureMixed:
		want["internet-facing"] = true
		want["hybrid"] = true
	}
	if len(want) == 0 {
		return DimensionScore{Name: "browse_tag_overlap", Value: 0.3, Weight: w, Evidence: "network exposure not advisory"}
	}
	hits := 0
	for _, tag := range entry.BrowseTags {
		if want[strings.ToLower(tag)] {
			hits++
		}
	}
	value := float64(hits) / float64(len(want))
	if value > 1 {
		value = 1
	}
	return DimensionScore{Name: "browse_tag_overlap", Value: value, Weight: w, Evidence: "browse_tags matched network_exposure posture"}
}

func scoreCostPostureAlignment(entry *models.CatalogEntry, in *models.Intent, w float64) DimensionScore {
	if entry.CostProfile == "" {
		return DimensionScore{Name: "cost_posture_alignment", Value: 0.5, Weight: w, Evidence: "entry declares no cost profile"}
	}
	if entry.CostProfile == in.CostPosture.Value {
		return DimensionScore{Name: "cost_posture_alignment", Value: 1.0, Weight: w, Evidence: "matches cost posture " + string(in.CostPosture.Value)}
	}
	return DimensionScore{Name: "cost_posture_alignment", Value: 0.3, Weight: w, Evidence: "entry's cost profile differs from inferred posture"}
}
