// Package intent implements the Intent Deriver (spec §4.3): it maps a
// normalized application context to the ten architectural dimensions the
// engine scores the catalog against, in a two-pass derivation —
// heuristics first, then an App-Mod override pass, per spec §9.
package intent

import (
	"strings"

	"github.com/archfit/archfit/internal/normalizer"
	"github.com/archfit/archfit/models"
)

// complianceMap is the closed mapping from compliance keyword to required
// security level (spec §4.3).
var complianceMap = []struct {
	keyword string
	level   models.SecurityLevel
}{
	{"hipaa", models.SecurityHighlyRegulated},
	{"pci", models.SecurityHighlyRegulated},
	{"fedramp", models.SecurityHighlyRegulated},
	{"soc2", models.SecurityRegulated},
	{"iso27001", models.SecurityRegulated},
	{"gdpr", models.SecurityRegulated},
	{"zero trust", models.SecurityEnterprise},
	{"managed identity", models.SecurityEnterprise},
}

// Derive produces an Intent from normalized context facts.
func Derive(n *normalizer.Normalized) *models.Intent {
	in := &models.Intent{}

	deriveRuntimeModel(n, in)
	deriveModernizationDepth(n, in)
	deriveCloudNativeFeasibility(n, in)
	deriveAvailability(n, in)
	deriveSecurity(n, in)
	deriveOperationalMaturity(n, in)
	deriveCostPosture(n, in)
	deriveTreatment(n, in)
	deriveTimeCategory(n, in)
	deriveNetworkExposure(n, in)

	applyAppModOverrides(n, in)

	return in
}

func containerReady(n *normalizer.Normalized) bool {
	for _, r := range n.AppModResults {
		if r.ContainerReady {
			return true
		}
	}
	return false
}

func distinctPlatformCount(n *normalizer.Normalized) int {
	seen := make(map[string]bool)
	for _, r := range n.AppModResults {
		seen[r.Platform] = true
	}
	return len(seen)
}

func deriveRuntimeModel(n *normalizer.Normalized, in *models.Intent) {
	signals := 0
	if len(n.AppModResults) > 0 {
		signals++
	}
	if n.ServerCount > 0 {
		signals++
	}

	switch {
	case containerReady(n) && distinctPlatformCount(n) >= 2:
		in.LikelyRuntimeModel = models.Signal[models.RuntimeModel]{
			Value: models.RuntimeMicroservices, Confidence: models.ConfidenceHigh, Source: "app_mod",
		}
	case n.ServerCount >= 2 && n.ServerCount <= 10:
		in.LikelyRuntimeModel = models.Signal[models.RuntimeModel]{
			Value: models.RuntimeNTier, Confidence: confidenceForSignals(signals), Source: "heuristic",
		}
	case n.ServerCount == 1:
		in.LikelyRuntimeModel = models.Signal[models.RuntimeModel]{
			Value: models.RuntimeMonolith, Confidence: confidenceForSignals(signals), Source: "heuristic",
		}
	case n.ServerCount > 10:
		in.LikelyRuntimeModel = models.Signal[models.RuntimeModel]{
			Value: models.RuntimeMixed, Confidence: confidenceForSignals(signals), Source: "heuristic",
		}
	default:
		in.LikelyRuntimeModel = models.Signal[models.RuntimeModel]{
			Value: models.RuntimeMixed, Confidence: models.ConfidenceUnknown, Source: "default",
		}
	}
}

func confidenceForSignals(signals int) models.SignalConfidence {
	switch {
	case signals >= 2:
		return models.ConfidenceMedium
	case signals == 1:
		return models.ConfidenceLow
	default:
		return models.ConfidenceUnknown
	}
}

// deriveModernizationDepth is derived from App-Mod results exclusively;
// without App-Mod data it remains UNKNOWN (spec §4.3).
func deriveModernizationDepth(n *normalizer.Normalized, in *models.Intent) {
	if len(n.AppModResults) == 0 {
		in.ModernizationDepthFeasible = models.Signal[string]{
			Value: "unknown", Confidence: models.ConfidenceUnknown, Source: "default",
		}
		return
	}
	best := "unknown"
	for _, r := range n.AppModResults {
		switch r.Status {
		case models.AppModSupported:
			best = "supported"
		case models.AppModReady:
			if best != "supported" {
				best = "ready"
			}
		}
	}
	in.ModernizationDepthFeasible = models.Signal[string]{
		Value: best, Confidence: models.ConfidenceHigh, Source: "app_mod",
	}
}

func deriveCloudNativeFeasibility(n *normalizer.Normalized, in *models.Intent) {
	if len(n.AppModResults) == 0 {
		in.CloudNativeFeasibility = models.Signal[string]{
			Value: "unknown", Confidence: models.ConfidenceUnknown, Source: "default",
		}
		return
	}
	if containerReady(n) {
		in.CloudNativeFeasibility = models.Signal[string]{
			Value: "high", Confidence: models.ConfidenceHigh, Source: "app_mod",
		}
		return
	}
	in.CloudNativeFeasibility = models.Signal[string]{
		Value: "low", Confidence: models.ConfidenceMedium, Source: "app_mod",
	}
}

func deriveAvailability(n *normalizer.Normalized, in *models.Intent) {
	conf := models.ConfidenceMedium
	source := "heuristic"
	if n.BusinessCriticality.Confidence == models.ConfidenceHigh {
		conf = models.ConfidenceHigh
		source = "declared"
	}

	var value models.AvailabilityModel
	switch n.BusinessCriticality.Value {
	case models.CriticalityMissionCritical:
		value = models.AvailabilityActiveActive
	case models.CriticalityHigh:
		value = models.AvailabilityMultiRegion
	case models.CriticalityMedium:
		value = models.AvailabilitySingleRegionHA
	default:
		value = models.AvailabilitySingleRegion
	}

	in.AvailabilityRequirement = models.Signal[models.AvailabilityModel]{
		Value: value, Confidence: conf, Source: source,
	}
}

func deriveSecurity(n *normalizer.Normalized, in *models.Intent) {
	keywords := make([]string, 0, len(n.ComplianceKeywords))
	for _, k := range n.ComplianceKeywords {
		keywords = append(keywords, strings.ToLower(k))
	}
	joined := strings.Join(keywords, " ")

	for _, m := range complianceMap {
		if strings.Contains(joined, m.keyword) {
			in.SecurityRequirement = models.Signal[models.SecurityLevel]{
				Value: m.level, Confidence: models.ConfidenceHigh, Source: "declared",
			}
			return
		}
	}

	in.SecurityRequirement = models.Signal[models.SecurityLevel]{
		Value: models.SecurityBasic, Confidence: models.ConfidenceLow, Source: "default",
	}
}

func deriveOperationalMaturity(n *normalizer.Normalized, in *models.Intent) {
	hints := make([]string, 0, len(n.OperationalHints))
	for _, h := range n.OperationalHints {
		hints = append(hints, strings.ToLower(h))
	}
	joined := strings.Join(hints, " ")

	hasCICD := strings.Contains(joined, "ci/cd") || strings.Contains(joined, "cicd") || strings.Contains(joined, "iac")
	hasSRE := strings.Contains(joined, "sre") || strings.Contains(joined, "slo")
	hasManual := strings.Contains(joined, "manual")

	switch {
	case hasSRE:
		in.OperationalMaturityEstimate = models.Signal[models.OperatingModel]{
			Value: models.OperatingSRE, Confidence: models.ConfidenceMedium, Source: "heuristic",
		}
	case hasCICD && hasManual:
		in.OperationalMaturityEstimate = models.Signal[models.OperatingModel]{
			Value: models.OperatingTransitional, Confidence: models.ConfidenceMedium, Source: "heuristic",
		}
	case hasCICD:
		in.OperationalMaturityEstimate = models.Signal[models.OperatingModel]{
			Value: models.OperatingDevOps, Confidence: models.ConfidenceMedium, Source: "heuristic",
		}
	case hasManual:
		in.OperationalMaturityEstimate = models.Signal[models.OperatingModel]{
			Value: models.OperatingTraditionalIT, Confidence: models.ConfidenceMedium, Source: "heuristic",
		}
	default:
		in.OperationalMaturityEstimate = models.Signal[models.OperatingModel]{
			Value: models.OperatingTraditionalIT, Confidence: models.ConfidenceUnknown, Source: "default",
		}
	}
}

func deriveCostPosture(n *normalizer.Normalized, in *models.Intent) {
	innovationTech := false
	for _, t := range n.DetectedTechnologies {
		if t == "kubernetes" || t == "kafka" {
			innovationTech = true
			break
		}
	}

	switch {
	case (n.BusinessCriticality.Value == models.CriticalityHigh || n.BusinessCriticality.Value == models.CriticalityMissionCritical) && innovationTech:
		in.CostPosture = models.Signal[models.CostProfile]{
			Value: models.CostInnovationFirst, Confidence: models.ConfidenceMedium, Source: "heuristic",
		}
	case n.UtilizationProfile == "low":
		in.CostPosture = models.Signal[models.CostProfile]{
			Value: models.CostMinimized, Confidence: models.ConfidenceMedium, Source: "heuristic",
		}
	default:
		in.CostPosture = models.Signal[models.CostProfile]{
			Value: models.CostBalanced, Confidence: models.ConfidenceLow, Source: "default",
		}
	}
}

func deriveTreatment(n *normalizer.Normalized, in *models.Intent) {
	if n.DeclaredTreatment != "" {
		in.Treatment = models.Signal[models.Treatment]{
			Value: n.DeclaredTreatment, Confidence: models.ConfidenceHigh, Source: "declared",
		}
		return
	}

	for _, r := range n.AppModResults {
		for _, target := range r.RecommendedTargets {
			t := strings.ToLower(target)
			switch {
			case strings.Contains(t, "refactor"):
				in.Treatment = models.Signal[models.Treatment]{
					Value: models.TreatmentRefactor, Confidence: models.ConfidenceMedium, Source: "app_mod",
				}
				raiseMaturityFloor(in, models.OperatingTransitional)
				return
			case strings.Contains(t, "replatform"):
				in.Treatment = models.Signal[models.Treatment]{
					Value: models.TreatmentReplatform, Confidence: models.ConfidenceMedium, Source: "app_mod",
				}
				raiseMaturityFloor(in, models.OperatingTransitional)
				return
			}
		}
	}

	in.Treatment = models.Signal[models.Treatment]{
		Value: models.TreatmentRehost, Confidence: models.ConfidenceLow, Source: "default",
	}
}

// raiseMaturityFloor enforces the treatment-based maturity floor: refactor
// and replatform imply at least transitional maturity (spec §4.3).
func raiseMaturityFloor(in *models.Intent, floor models.OperatingModel) {
	if in.OperationalMaturityEstimate.Value.Rank() < floor.Rank() {
		in.OperationalMaturityEstimate = models.Signal[models.OperatingModel]{
			Value: floor, Confidence: models.ConfidenceMedium, Source: "heuristic",
		}
	}
}

func deriveTimeCategory(n *normalizer.Normalized, in *models.Intent) {
	if n.DeclaredTimeCategory != "" {
		in.TimeCategory = models.Signal[models.TimeCategory]{
			Value: n.DeclaredTimeCategory, Confidence: models.ConfidenceHigh, Source: "declared",
		}
		return
	}
	in.TimeCategory = models.Signal[models.TimeCategory]{
		Value: "", Confidence: models.ConfidenceUnknown, Source: "default",
	}
}

func deriveNetworkExposure(n *normalizer.Normalized, in *models.Intent) {
	if n.NetworkExposureHint != "" {
		if exposure, ok := parseExposure(n.NetworkExposureHint); ok {
			in.NetworkExposure = models.Signal[models.NetworkExposure]{
				Value: exposure, Confidence: models.ConfidenceHigh, Source: "declared",
			}
			return
		}
	}
	// Always low confidence absent an explicit hint, which guarantees the
	// mandatory network_exposure question (spec §4.4).
	in.NetworkExposure = models.Signal[models.NetworkExposure]{
		Value: models.ExposureInternal, Confidence: models.ConfidenceLow, Source: "default",
	}
}

func parseExposure(hint string) (models.NetworkExposure, bool) {
	h := models.NetworkExposure(strings.ToLower(strings.TrimSpace(hint)))
	for _, v := range models.ValidNetworkExposures {
		if v == h {
			return v, true
		}
	}
	return "", false
}

// applyAppModOverrides is the override pass from spec §9: App-Mod signals
// win over heuristics. Where it changes a value already set by a
// heuristic, the prior value is recorded as a rejected inference.
func applyAppModOverrides(n *normalizer.Normalized, in *models.Intent) {
	for _, r := range n.AppModResults {
		if r.Status != models.AppModSupported && r.Status != models.AppModNotSupported {
			continue
		}
		if r.ContainerReady && in.CloudNativeFeasibility.Source != "app_mod" {
			if in.CloudNativeFeasibility.Value != "high" {
				in.RejectedInferences = append(in.RejectedInferences, models.RejectedInference{
					Dimension: "cloud_native_feasibility",
					Value:     in.CloudNativeFeasibility.Value,
					Reason:    "overridden by app_mod container_ready=true on platform " + r.Platform,
				})
			}
			in.CloudNativeFeasibility = models.Signal[string]{
				Value: "high", Confidence: models.ConfidenceHigh, Source: "app_mod",
			}
		}
	}
}
