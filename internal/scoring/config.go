package scoring

import "fmt"

// Weights holds the ten dimension weights from spec §4.6. They must sum
// to 1.0 within floating-point tolerance.
type Weights struct {
	TreatmentAlignment       float64
	PlatformCompatibility    float64
	AppModRecommended        float64
	RuntimeModelCompatibility float64
	ServiceOverlap           float64
	AvailabilityAlignment    float64
	OperatingModelFit        float64
	ComplexityTolerance      float64
	BrowseTagOverlap         float64
	CostPostureAlignment     float64
}

// DefaultWeights matches the ADR-0001 defaults in spec §4.6.
var DefaultWeights = Weights{
	TreatmentAlignment:        0.20,
	PlatformCompatibility:     0.15,
	AppModRecommended:         0.10,
	RuntimeModelCompatibility: 0.10,
	ServiceOverlap:            0.10,
	AvailabilityAlignment:     0.10,
	OperatingModelFit:         0.08,
	ComplexityTolerance:       0.07,
	BrowseTagOverlap:          0.05,
	CostPostureAlignment:      0.05,
}

func (w Weights) sum() float64 {
	return w.TreatmentAlignment + w.PlatformCompatibility + w.AppModRecommended +
		w.RuntimeModelCompatibility + w.ServiceOverlap + w.AvailabilityAlignment +
		w.OperatingModelFit + w.ComplexityTolerance + w.BrowseTagOverlap + w.CostPostureAlignment
}

// QualityWeights maps catalog_quality to its multiplicative score weight.
type QualityWeights map[string]float64

// DefaultQualityWeights matches spec §4.6.
var DefaultQualityWeights = QualityWeights{
	"curated":      1.00,
	"ai_enriched":  0.95,
	"ai_suggested": 0.85,
	"example_only": 0.70,
}

// Config is the validated scoring configuration passed into the scorer:
// dimension weights, quality weights, and the penalty cap. The per-signal
// penalty values (models.SignalConfidence.Penalty) and the eligibility
// thresholds (internal/eligibility) are fixed in code and are not part of
// Config.
type Config struct {
	Weights        Weights
	QualityWeights QualityWeights
	MaxPenalty     float64
}

// DefaultConfig matches every default named in spec §4.6.
var DefaultConfig = Config{
	Weights:        DefaultWeights,
	QualityWeights: DefaultQualityWeights,
	MaxPenalty:     0.25,
}

// Validate checks the configuration's invariants: dimension weight sum =
// 1.0 ± 1e-9 (spec §8), MaxPenalty in [0,1], and every quality weight in
// [0,1]. Individual dimension weights are not range-checked.
func (c Config) Validate() error {
	if diff := c.Weights.sum() - 1.0; diff > 1e-9 || diff < -1e-9 {
		return fmt.Errorf("scoring: dimension weights sum to %f, want 1.0", c.Weights.sum())
	}
	if c.MaxPenalty < 0 || c.MaxPenalty > 1 {
		return fmt.Errorf("scoring: max_penalty %f out of range [0,1]", c.MaxPenalty)
	}
	for name, w := range c.QualityWeights {
		if w < 0 || w > 1 {
			return fmt.Errorf("scoring: quality weight %q=%f out of range [0,1]", name, w)
		}
	}
	return nil
}
