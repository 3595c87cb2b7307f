package scoring

import (
	"testing"

	"github.com/archfit/archfit/internal/normalizer"
	"github.com/archfit/archfit/models"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig.Validate(); err != nil {
		t.Errorf("DefaultConfig.Validate() error = %v", err)
	}
}

func TestValidateRejectsBadWeightSum(t *testing.T) {
	cfg := DefaultConfig
	cfg.Weights.TreatmentAlignment = 0.99
	if err := cfg.Validate(); err == nil {
		t.Errorf("Validate() = nil, want error for weights not summing to 1.0")
	}
}

func TestValidateRejectsOutOfRangeMaxPenalty(t *testing.T) {
	cfg := DefaultConfig
	cfg.MaxPenalty = 1.5
	if err := cfg.Validate(); err == nil {
		t.Errorf("Validate() = nil, want error for max_penalty out of range")
	}
}

func perfectEntry() *models.CatalogEntry {
	return &models.CatalogEntry{
		ArchitectureID:          "a1",
		CatalogQuality:          models.QualityCurated,
		SupportedTreatments:     []models.Treatment{models.TreatmentRehost},
		ExpectedRuntimeModels:   []models.RuntimeModel{models.RuntimeMonolith},
		AvailabilityModels:      []models.AvailabilityModel{models.AvailabilitySingleRegion},
		OperatingModelRequired:  models.OperatingTraditionalIT,
		Complexity:              models.ComplexityLow,
		CostProfile:             models.CostBalanced,
	}
}

func perfectIntent() *models.Intent {
	in := &models.Intent{}
	in.Treatment = models.Signal[models.Treatment]{Value: models.TreatmentRehost, Confidence: models.ConfidenceHigh}
	in.LikelyRuntimeModel = models.Signal[models.RuntimeModel]{Value: models.RuntimeMonolith, Confidence: models.ConfidenceHigh}
	in.AvailabilityRequirement = models.Signal[models.AvailabilityModel]{Value: models.AvailabilitySingleRegion, Confidence: models.ConfidenceHigh}
	in.OperationalMaturityEstimate = models.Signal[models.OperatingModel]{Value: models.OperatingTraditionalIT, Confidence: models.ConfidenceHigh}
	in.CostPosture = models.Signal[models.CostProfile]{Value: models.CostBalanced, Confidence: models.ConfidenceHigh}
	in.SecurityRequirement = models.Signal[models.SecurityLevel]{Value: models.SecurityBasic, Confidence: models.ConfidenceHigh}
	in.ModernizationDepthFeasible = models.Signal[string]{Value: "unknown", Confidence: models.ConfidenceHigh}
	in.CloudNativeFeasibility = models.Signal[string]{Value: "low", Confidence: models.ConfidenceHigh}
	in.NetworkExposure = models.Signal[models.NetworkExposure]{Value: models.ExposureInternal, Confidence: models.ConfidenceHigh}
	in.TimeCategory = models.Signal[models.TimeCategory]{Value: models.TimeTolerate, Confidence: models.ConfidenceHigh}
	return in
}

func TestScorePerfectMatchHasNoPenalty(t *testing.T) {
	entry := perfectEntry()
	in := perfectIntent()
	n := &normalizer.Normalized{}

	scored := Score(entry, in, n, DefaultConfig)
	if scored.ConfidencePenalty != 0 {
		t.Errorf("ConfidencePenalty = %f, want 0 (all dimensions high confidence)", scored.ConfidencePenalty)
	}
	if scored.QualityWeight != 1.0 {
		t.Errorf("QualityWeight = %f, want 1.0 for curated", scored.QualityWeight)
	}
	// Platform compatibility, app-mod recommendation, service overlap and
	// browse-tag overlap have no signal here, so those four dimensions
	// score 0 even on an otherwise exact match: 0.20 + 0.10 +
	// 0.10 + 0.08 + 0.07 + 0.05 = 0.60 base weighted, * 100 * quality 1.0.
	if scored.LikelihoodScore != 60 {
		t.Errorf("LikelihoodScore = %d, want 60", scored.LikelihoodScore)
	}
}

func TestScoreMismatchedTreatmentScoresZeroOnThatDimension(t *testing.T) {
	entry := perfectEntry()
	entry.SupportedTreatments = []models.Treatment{models.TreatmentRefactor}
	in := perfectIntent()
	n := &normalizer.Normalized{}

	scored := Score(entry, in, n, DefaultConfig)
	for _, d := range scored.Dimensions {
		if d.Name == "treatment_alignment" && d.Value != 0.0 {
			t.Errorf("treatment_alignment value = %f, want 0.0", d.Value)
		}
	}
}

func TestScoreUnknownQualityWeightsToZero(t *testing.T) {
	entry := perfectEntry()
	entry.CatalogQuality = models.QualityDiscard
	in := perfectIntent()
	n := &normalizer.Normalized{}

	scored := Score(entry, in, n, DefaultConfig)
	if scored.QualityWeight != 0 {
		t.Errorf("QualityWeight = %f, want 0 for discard", scored.QualityWeight)
	}
	if scored.LikelihoodScore != 0 {
		t.Errorf("LikelihoodScore = %d, want 0 when quality weight is 0", scored.LikelihoodScore)
	}
}

func TestLessOrdersByScoreThenQualityThenID(t *testing.T) {
	a := Scored{ArchitectureID: "a", LikelihoodScore: 80}
	b := Scored{ArchitectureID: "b", LikelihoodScore: 90}
	if !Less(b, a, models.QualityCurated, models.QualityCurated) {
		t.Errorf("Less(b, a) = false, want true (b scores higher)")
	}

	c := Scored{ArchitectureID: "c", LikelihoodScore: 80}
	d := Scored{ArchitectureID: "d", LikelihoodScore: 80}
	if !Less(c, d, models.QualityCurated, models.QualityAISuggested) {
		t.Errorf("Less(c, d) = false, want true (c has better quality rank on a tie)")
	}

	e := Scored{ArchitectureID: "e", LikelihoodScore: 80}
	f := Scored{ArchitectureID: "f", LikelihoodScore: 80}
	if !Less(e, f, models.QualityCurated, models.QualityCurated) {
		t.Errorf("Less(e, f) = false, want true (e sorts first lexicographically on a full tie)")
	}
}
