// Package eligibility implements the Eligibility Filter (spec §4.5): an
// ordered chain of binary exclusion rules, first-failure-wins, applied
// before any entry reaches the scorer.
package eligibility

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/archfit/archfit/internal/normalizer"
	"github.com/archfit/archfit/models"
)

var fold = cases.Fold()

// legacyOSMarkers are substrings of server_details[].os that indicate an
// out-of-support legacy platform, used by the legacy_only not-suitable
// reason. Free text, so matched case-insensitively.
var legacyOSMarkers = []string{
	"2000", "2003", "2008", "nt 4", "solaris", "aix", "hp-ux",
}

// Exclusion reason codes, referenced by the CLI/explanation layer and by
// the spec's testable properties (e.g. "app_mod_blocker").
const (
	ReasonCatalogQuality    = "catalog_quality_discard"
	ReasonTreatmentMismatch = "treatment_mismatch"
	ReasonTimeMismatch      = "time_mismatch"
	ReasonSecurityGap       = "security_gap"
	ReasonOperatingModelGap = "operating_model_gap"
	ReasonAppModBlocker     = "app_mod_blocker"
	ReasonNotSuitable       = "not_suitable_for"
)

// maxOperatingModelGap is the largest positive gap between an entry's
// required operating model and the team's estimated maturity that still
// admits the entry (spec §4.5 rule 5).
const maxOperatingModelGap = 1

// Evaluate runs the ordered rule chain against one catalog entry. It
// returns (nil, true) when the entry is eligible, or the first failing
// reason and false otherwise.
func Evaluate(entry *models.CatalogEntry, in *models.Intent, n *normalizer.Normalized) (*models.ExclusionReason, bool) {
	if reason, ok := catalogQualityGate(entry); !ok {
		return reason, false
	}
	if reason, ok := treatmentGate(entry, in); !ok {
		return reason, false
	}
	if reason, ok := timeGate(entry, in); !ok {
		return reason, false
	}
	if reason, ok := securityGate(entry, in); !ok {
		return reason, false
	}
	if reason, ok := operatingModelGate(entry, in); !ok {
		return reason, false
	}
	if reason, ok := appModBlockerGate(entry, n); !ok {
		return reason, false
	}
	if reason, ok := notSuitableGate(entry, n); !ok {
		return reason, false
	}
	return nil, true
}

func catalogQualityGate(entry *models.CatalogEntry) (*models.ExclusionReason, bool) {
	if !entry.CatalogQuality.Scoreable() {
		return &models.ExclusionReason{
			Code:   ReasonCatalogQuality,
			Detail: "catalog_quality is " + string(entry.CatalogQuality),
		}, false
	}
	return nil, true
}

func treatmentGate(entry *models.CatalogEntry, in *models.Intent) (*models.ExclusionReason, bool) {
	if len(entry.SupportedTreatments) == 0 || in.Treatment.Value == "" {
		return nil, true
	}
	for _, t := range entry.SupportedTreatments {
		if t == in.Treatment.Value {
			return nil, true
		}
	}
	return &models.ExclusionReason{
		Code:   ReasonTreatmentMismatch,
		Detail: "declared treatment " + string(in.Treatment.Value) + " not in entry's supported_treatments",
	}, false
}

func timeGate(entry *models.CatalogEntry, in *models.Intent) (*models.ExclusionReason, bool) {
	if len(entry.SupportedTimeCategories) == 0 || in.TimeCategory.Value == "" {
		return nil, true
	}
	for _, t := range entry.SupportedTimeCategories {
		if t == in.TimeCategory.Value {
			return nil, true
		}
	}
	return &models.ExclusionReason{
		Code:   ReasonTimeMismatch,
		Detail: "time category " + string(in.TimeCategory.Value) + " not in entry's supported_time_categories",
	}, false
}

func securityGate(entry *models.CatalogEntry, in *models.Intent) (*models.ExclusionReason, bool) {
	if entry.SecurityLevel.Rank() < in.SecurityRequirement.Value.Rank() {
		return &models.ExclusionReason{
			Code:   ReasonSecurityGap,
			Detail: "entry security_level " + string(entry.SecurityLevel) + " below required " + string(in.SecurityRequirement.Value),
		}, false
	}
	return nil, true
}

func operatingModelGate(entry *models.CatalogEntry, in *models.Intent) (*models.ExclusionReason, bool) {
	gap := entry.OperatingModelRequired.Rank() - in.OperationalMaturityEstimate.Value.Rank()
	if gap > maxOperatingModelGap {
		return &models.ExclusionReason{
			Code:   ReasonOperatingModelGap,
			Detail: "entry requires operating_model " + string(entry.OperatingModelRequired) + ", exceeds team maturity by more than one level",
		}, false
	}
	return nil, true
}

func appModBlockerGate(entry *models.CatalogEntry, n *normalizer.Normalized) (*models.ExclusionReason, bool) {
	blocked := make(map[string]bool)
	for _, r := range n.AppModResults {
		if r.Status == models.AppModNotSupported {
			blocked[strings.ToLower(r.Platform)] = true
		}
	}
	if len(blocked) == 0 {
		return nil, true
	}
	for _, svc := range entry.CoreServices {
		if blocked[strings.ToLower(svc)] {
			return &models.ExclusionReason{
				Code:   ReasonAppModBlocker,
				Detail: "core service " + svc + " is marked NotSupported by App-Mod",
			}, false
		}
	}
	return nil, true
}

func notSuitableGate(entry *models.CatalogEntry, n *normalizer.Normalized) (*models.ExclusionReason, bool) {
	for _, reason := range entry.NotSuitableFor {
		if matchesObservedCharacteristic(reason, n) {
			return &models.ExclusionReason{
				Code:   ReasonNotSuitable,
				Detail: "entry not suitable for " + string(reason),
			}, false
		}
	}
	return nil, true
}

func matchesObservedCharacteristic(reason models.NotSuitableReason, n *normalizer.Normalized) bool {
	switch reason {
	case models.NotSuitableSingleVM:
		return n.ServerCount == 1
	case models.NotSuitableRegulatedProhibited:
		return len(n.ComplianceKeywords) > 0
	case models.NotSuitableNoPublicInternet:
		return n.NetworkExposureHint == string(models.ExposureInternal)
	case models.NotSuitableBatchOnly:
		return hasHint(n.OperationalHints, "batch")
	case models.NotSuitableStatefulUnsupported:
		return hasHint(n.OperationalHints, "stateful")
	case models.NotSuitableLegacyOnly:
		return hasLegacyOS(n.OSMix)
	case models.NotSuitableHighComplexityTeams:
		return hasHint(n.OperationalHints, "small_team") || hasHint(n.OperationalHints, "single_team")
	default:
		return false
	}
}

func hasHint(hints []string, keyword string) bool {
	for _, h := range hints {
		if strings.Contains(fold.String(h), keyword) {
			return true
		}
	}
	return false
}

func hasLegacyOS(osMix []string) bool {
	for _, os := range osMix {
		folded := fold.String(os)
		for _, marker := range legacyOSMarkers {
			if strings.Contains(folded, marker) {
				return true
			}
		}
	}
	return false
}
