// Package question implements the dynamic Question Generator (spec
// §4.4). The question catalog is a static data structure keyed by
// dimension, per spec §9, so adding a dimension never requires touching
// the generation dispatch.
package question

import (
	"sort"

	"github.com/archfit/archfit/models"
)

// definition is one static question-catalog entry.
type definition struct {
	dimension          string
	questionText       string
	options            []models.QuestionOption
	affectsEligibility bool
	always             bool                         // produced regardless of confidence
	skipUnless         func(in *models.Intent) bool // extra gate, e.g. "only if UNKNOWN"
}

// catalog is the static question catalog, keyed by presence in this
// slice rather than by code branches per dimension.
var catalog = []definition{
	{
		dimension:    "network_exposure",
		questionText: "Is this application exposed to the public internet, internal only, or both?",
		options: []models.QuestionOption{
			{Value: "external", Label: "Internet-facing"},
			{Value: "internal", Label: "Internal only"},
			{Value: "mixed", Label: "Both"},
		},
		affectsEligibility: false,
		always:             true,
	},
	{
		dimension:    "treatment",
		questionText: "What migration treatment is planned for this application?",
		options: []models.QuestionOption{
			{Value: string(models.TreatmentRetire), Label: "Retire"},
			{Value: string(models.TreatmentTolerate), Label: "Tolerate"},
			{Value: string(models.TreatmentRehost), Label: "Rehost"},
			{Value: string(models.TreatmentReplatform), Label: "Replatform"},
			{Value: string(models.TreatmentRefactor), Label: "Refactor"},
			{Value: string(models.TreatmentReplace), Label: "Replace"},
			{Value: string(models.TreatmentRebuild), Label: "Rebuild"},
			{Value: string(models.TreatmentRetain), Label: "Retain"},
		},
		affectsEligibility: true,
	},
	{
		dimension:    "time_category",
		questionText: "What is the strategic posture (TIME) for this application?",
		options: []models.QuestionOption{
			{Value: string(models.TimeTolerate), Label: "Tolerate"},
			{Value: string(models.TimeInvest), Label: "Invest"},
			{Value: string(models.TimeMigrate), Label: "Migrate"},
			{Value: string(models.TimeEliminate), Label: "Eliminate"},
		},
		affectsEligibility: true,
		skipUnless: func(in *models.Intent) bool {
			return in.TimeCategory.Confidence == models.ConfidenceUnknown
		},
	},
	{
		dimension:    "availability_requirement",
		questionText: "What availability posture does this application require?",
		options: []models.QuestionOption{
			{Value: string(models.AvailabilitySingleRegion), Label: "Single region"},
			{Value: string(models.AvailabilitySingleRegionHA), Label: "Single region, highly available"},
			{Value: string(models.AvailabilityMultiRegion), Label: "Multi-region"},
			{Value: string(models.AvailabilityActiveActive), Label: "Active-active"},
		},
		affectsEligibility: false,
	},
	{
		dimension:    "security_requirement",
		questionText: "What security/compliance tier applies to this application?",
		options: []models.QuestionOption{
			{Value: string(models.SecurityBasic), Label: "Basic"},
			{Value: string(models.SecurityEnterprise), Label: "Enterprise"},
			{Value: string(models.SecurityRegulated), Label: "Regulated"},
			{Value: string(models.SecurityHighlyRegulated), Label: "Highly regulated"},
		},
		affectsEligibility: true,
	},
	{
		dimension:    "operational_maturity_estimate",
		questionText: "What best describes this team's operating model today?",
		options: []models.QuestionOption{
			{Value: string(models.OperatingTraditionalIT), Label: "Traditional IT"},
			{Value: string(models.OperatingTransitional), Label: "Transitional"},
			{Value: string(models.OperatingDevOps), Label: "DevOps"},
			{Value: string(models.OperatingSRE), Label: "SRE"},
		},
		affectsEligibility: true,
	},
	{
		dimension:    "cost_posture",
		questionText: "What cost posture should guide this recommendation?",
		options: []models.QuestionOption{
			{Value: string(models.CostMinimized), Label: "Minimize cost"},
			{Value: string(models.CostBalanced), Label: "Balanced"},
			{Value: string(models.CostScaleOptimized), Label: "Optimize for scale"},
			{Value: string(models.CostInnovationFirst), Label: "Innovation first"},
		},
		affectsEligibility: false,
	},
}

// ConfidenceThreshold is the confidence at or below which a question is
// generated for a dimension. Configurable per spec §4.4.
var ConfidenceThreshold = models.ConfidenceLow

// Generate returns the clarification questions warranted by in, sorted
// required-first, then by affects_eligibility, then stably by
// question_id (spec §4.4).
func Generate(in *models.Intent) []models.Question {
	var out []models.Question
	for _, d := range catalog {
		if !d.always {
			if d.skipUnless != nil {
				if !d.skipUnless(in) {
					continue
				}
			} else if !in.ConfidenceOf(d.dimension).AtMost(ConfidenceThreshold) {
				continue
			}
		}

		out = append(out, models.Question{
			QuestionID:          d.dimension,
			Dimension:           d.dimension,
			QuestionText:        d.questionText,
			Options:             d.options,
			Required:            d.always,
			AffectsEligibility:  d.affectsEligibility,
			CurrentInference:    currentValue(in, d.dimension),
			InferenceConfidence: in.ConfidenceOf(d.dimension),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Required != out[j].Required {
			return out[i].Required
		}
		if out[i].AffectsEligibility != out[j].AffectsEligibility {
			return out[i].AffectsEligibility
		}
		return out[i].QuestionID < out[j].QuestionID
	})
	return out
}

func currentValue(in *models.Intent, dimension string) string {
	switch dimension {
	case "network_exposure":
		return string(in.NetworkExposure.Value)
	case "treatment":
		return string(in.Treatment.Value)
	case "time_category":
		return string(in.TimeCategory.Value)
	case "availability_requirement":
		return string(in.AvailabilityRequirement.Value)
	case "security_requirement":
		return string(in.SecurityRequirement.Value)
	case "operational_maturity_estimate":
		return string(in.OperationalMaturityEstimate.Value)
	case "cost_posture":
		return string(in.CostPosture.Value)
	default:
		return ""
	}
}

// Apply folds user answers back into an Intent: each answer replaces the
// inferred value and upgrades confidence to HIGH (spec §4.4).
func Apply(in *models.Intent, answers map[string]string) {
	for dimension, value := range answers {
		switch dimension {
		case "network_exposure":
			in.NetworkExposure = models.Signal[models.NetworkExposure]{
				Value: models.NetworkExposure(value), Confidence: models.ConfidenceHigh, Source: "user_answer",
			}
		case "treatment":
			in.Treatment = models.Signal[models.Treatment]{
				Value: models.Treatment(value), Confidence: models.ConfidenceHigh, Source: "user_answer",
			}
		case "time_category":
			in.TimeCategory = models.Signal[models.TimeCategory]{
				Value: models.TimeCategory(value), Confidence: models.ConfidenceHigh, Source: "user_answer",
			}
		case "availability_requirement":
			in.AvailabilityRequirement = models.Signal[models.AvailabilityModel]{
				Value: models.AvailabilityModel(value), Confidence: models.ConfidenceHigh, Source: "user_answer",
			}
		case "security_requirement":
			in.SecurityRequirement = models.Signal[models.SecurityLevel]{
				Value: models.SecurityLevel(value), Confidence: models.ConfidenceHigh, Source: "user_answer",
			}
		case "operational_maturity_estimate":
			in.OperationalMaturityEstimate = models.Signal[models.OperatingModel]{
				Value: models.OperatingModel(value), Confidence: models.ConfidenceHigh, Source: "user_answer",
			}
		case "cost_posture":
			in.CostPosture = models.Signal[models.CostProfile]{
				Value: models.CostProfile(value), Confidence: models.ConfidenceHigh, Source: "user_answer",
			}
		}
	}
}

// ValidIDs returns the set of question_ids this catalog can ever produce,
// used by the caller to validate answers before applying them.
func ValidIDs() map[string]bool {
	ids := make(map[string]bool, len(catalog))
	for _, d := range catalog {
		ids[d.dimension] = true
	}
	return ids
}

// OptionValues returns the allowed values for a given question_id, or nil
// if the id is unknown.
func OptionValues(questionID string) []string {
	for _, d := range catalog {
		if d.dimension != questionID {
			continue
		}
		vals := make([]string, 0, len(d.options))
		for _, o := range d.options {
			vals = append(vals, o.Value)
		}
		return vals
	}
	return nil
}
