// Package normalizer implements the Context Normalizer (spec §4.2): it
// turns the raw facts in an AppContext into canonicalized fields, so every
// later stage works from normalized values instead of re-parsing free
// text. Only business criticality carries a SignalConfidence and source;
// the other fields are plain values with no confidence attached.
package normalizer

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/archfit/archfit/models"
)

// fold is a locale-neutral case fold, used instead of strings.ToLower for
// every canonical-lookup key so a technology name or criticality value
// typed in any casing still resolves correctly.
var fold = cases.Fold()

// Normalized is the normalizer's output: the same facts as AppContext,
// but canonicalized. BusinessCriticality is the only field that carries a
// confidence and source.
type Normalized struct {
	ApplicationName string

	BusinessCriticality models.Signal[models.BusinessCriticality]

	ServerCount        int
	EnvironmentsPresent []string
	OSMix               []string
	UtilizationProfile  string

	DetectedTechnologies []string
	ApprovedServices     map[string]string

	AppModResults []models.AppModResult

	ComplianceKeywords  []string
	NetworkExposureHint string

	OperationalHints []string

	DeclaredTreatment    models.Treatment
	DeclaredTimeCategory models.TimeCategory
}

// criticalityAliases maps the free-form spellings seen from upstream
// assessment tools to the closed BusinessCriticality vocabulary.
var criticalityAliases = map[string]models.BusinessCriticality{
	"low":              models.CriticalityLow,
	"medium":           models.CriticalityMedium,
	"moderate":         models.CriticalityMedium,
	"high":             models.CriticalityHigh,
	"extreme":          models.CriticalityMissionCritical,
	"missioncritical":  models.CriticalityMissionCritical,
	"mission_critical": models.CriticalityMissionCritical,
	"mission critical": models.CriticalityMissionCritical,
	"critical":         models.CriticalityMissionCritical,
}

// technologyAllowList is the closed set of canonical technology names the
// normalizer recognizes. Anything not on this list, or that looks like a
// prose fragment rather than a single technology token, is dropped.
var technologyAllowList = map[string]string{
	"java":          "java",
	"spring":        "spring",
	"spring boot":   "spring_boot",
	".net":          "dotnet",
	"dotnet":        "dotnet",
	"node":          "nodejs",
	"node.js":       "nodejs",
	"nodejs":        "nodejs",
	"python":        "python",
	"go":            "go",
	"golang":        "go",
	"docker":        "docker",
	"kubernetes":    "kubernetes",
	"k8s":           "kubernetes",
	"sql server":    "sql_server",
	"mysql":         "mysql",
	"postgresql":    "postgresql",
	"postgres":      "postgresql",
	"redis":         "redis",
	"iis":           "iis",
	"tomcat":        "tomcat",
	"nginx":         "nginx",
	"rabbitmq":      "rabbitmq",
	"kafka":         "kafka",
	"cobol":         "cobol",
	"mainframe":     "mainframe",
}

// prose-fragment rejection: entries containing connectives, articles, or
// punctuation are assessment free text, not a canonical technology name.
var proseSignals = []string{" and ", " or ", " the ", " a ", " an ", " with ", ",", ";", "(", ")"}

// Normalize canonicalizes the facts in ctx and attaches per-field
// confidence per spec §4.2.
func Normalize(ctx *models.AppContext) *Normalized {
	n := &Normalized{
		ApplicationName:      ctx.ApplicationName,
		ServerCount:          ctx.ServerCount,
		EnvironmentsPresent:  ctx.EnvironmentsPresent,
		OSMix:                ctx.OSMix,
		UtilizationProfile:   ctx.UtilizationProfile,
		ApprovedServices:     ctx.ApprovedServices,
		AppModResults:        ctx.AppModResults,
		ComplianceKeywords:   ctx.ComplianceKeywords,
		NetworkExposureHint:  ctx.NetworkExposureHint,
		OperationalHints:     ctx.OperationalHints,
		DeclaredTreatment:    ctx.DeclaredTreatment,
		DeclaredTimeCategory: ctx.DeclaredTimeCategory,
	}

	n.BusinessCriticality = normalizeCriticality(ctx.BusinessCriticality)
	n.DetectedTechnologies = canonicalizeTechnologies(ctx.DetectedTechnologies)

	return n
}

func normalizeCriticality(raw string) models.Signal[models.BusinessCriticality] {
	key := fold.String(strings.TrimSpace(raw))
	if val, ok := criticalityAliases[key]; ok {
		return models.Signal[models.BusinessCriticality]{
			Value:      val,
			Confidence: models.ConfidenceHigh,
			Source:     "declared",
		}
	}
	return models.Signal[models.BusinessCriticality]{
		Value:      models.CriticalityMedium,
		Confidence: models.ConfidenceUnknown,
		Source:     "default",
	}
}

// canonicalizeTechnologies deduplicates, lower-cases, and filters raw
// technology strings against technologyAllowList, rejecting anything that
// reads like a prose fragment instead of a single token.
func canonicalizeTechnologies(raw []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range raw {
		key := fold.String(strings.TrimSpace(t))
		if key == "" || isProseFragment(key) {
			continue
		}
		canon, ok := technologyAllowList[key]
		if !ok {
			continue
		}
		if seen[canon] {
			continue
		}
		seen[canon] = true
		out = append(out, canon)
	}
	return out
}

func isProseFragment(s string) bool {
	padded := " " + s + " "
	for _, signal := range proseSignals {
		if strings.Contains(padded, signal) {
			return true
		}
	}
	return false
}
