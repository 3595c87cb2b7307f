// Package catalogio loads, validates, and indexes the architecture
// catalog (spec §4.1). All file access goes through afero.Fs so loading
// can be exercised against an in-memory filesystem in tests, the same
// discipline the teacher's OPA builtins use for file-backed predicates.
package catalogio

import (
	"fmt"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/archfit/archfit/internal/apperrors"
	"github.com/archfit/archfit/models"
)

// minVersion is the lowest catalog schema version this loader accepts.
const minVersion = "1.0.0"

// rawDocument mirrors the structured catalog document described in
// spec §6: top-level version/generated_at/source_repo plus the entry list.
type rawDocument struct {
	Version      string               `json:"version" yaml:"version"`
	GeneratedAt  string               `json:"generated_at" yaml:"generated_at"`
	SourceRepo   string               `json:"source_repo" yaml:"source_repo"`
	Architectures []models.CatalogEntry `json:"architectures" yaml:"architectures"`
}

// Warning is a non-fatal, entry-level catalog issue: an unknown enum value
// or shape problem that causes one entry to be dropped without failing
// the whole load (spec §4.1).
type Warning struct {
	ArchitectureID string
	Reason         string
}

// Load reads, validates, and indexes a catalog document from fs at path.
// It never mutates the document on disk. Returns the indexed catalog plus
// any entry-level warnings, or a structured *apperrors.Error on a
// process-level failure (bad shape, unsupported version, duplicate id, or
// every entry dropped).
func Load(fs afero.Fs, path string) (*models.Catalog, []Warning, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CatalogInvalid, "read catalog file", err)
	}

	var doc rawDocument
	if err := decode(data, formatForPath(path), &doc); err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CatalogInvalid, "parse catalog document", err)
	}

	if doc.Version == "" {
		return nil, nil, apperrors.New(apperrors.CatalogInvalid, "catalog document missing version", nil)
	}
	if compareSemver(doc.Version, minVersion) < 0 {
		return nil, nil, apperrors.New(apperrors.CatalogVersionUnsupported,
			fmt.Sprintf("catalog version %s is below minimum %s", doc.Version, minVersion), nil)
	}
	if len(doc.Architectures) == 0 {
		// An explicitly empty catalog is a valid boundary case (spec §8),
		// not a load failure.
		return models.NewCatalog(doc.Version, doc.GeneratedAt, doc.SourceRepo, nil), nil, nil
	}

	seen := make(map[string]bool, len(doc.Architectures))
	kept := make([]models.CatalogEntry, 0, len(doc.Architectures))
	var warnings []Warning

	for _, entry := range doc.Architectures {
		if entry.ArchitectureID == "" {
			warnings = append(warnings, Warning{Reason: "missing architecture_id"})
			continue
		}
		if seen[entry.ArchitectureID] {
			return nil, nil, apperrors.New(apperrors.CatalogDuplicateID,
				fmt.Sprintf("duplicate architecture_id %q", entry.ArchitectureID), nil)
		}
		seen[entry.ArchitectureID] = true

		if reason, ok := validateEnums(entry); !ok {
			warnings = append(warnings, Warning{ArchitectureID: entry.ArchitectureID, Reason: reason})
			continue
		}
		kept = append(kept, entry)
	}

	if len(kept) == 0 {
		return nil, nil, apperrors.New(apperrors.CatalogInvalid,
			"catalog has no valid entries after dropping invalid ones", map[string]any{
				"warnings": len(warnings),
			})
	}

	return models.NewCatalog(doc.Version, doc.GeneratedAt, doc.SourceRepo, kept), warnings, nil
}

// LoadLocked is Load guarded by an advisory file lock, used by the CLI's
// `watch` re-scoring command so a catalog edit mid-save can never be read
// half-written. fs must be the OS filesystem; flock only locks real paths.
func LoadLocked(fs afero.Fs, path string) (*models.Catalog, []Warning, error) {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CatalogInvalid, "acquire catalog lock", err)
	}
	defer lock.Unlock()
	return Load(fs, path)
}

func validateEnums(e models.CatalogEntry) (string, bool) {
	if !oneOf(string(e.Family), models.ValidFamilies) {
		return fmt.Sprintf("unknown family %q", e.Family), false
	}
	if !oneOf(string(e.WorkloadDomain), models.ValidWorkloadDomains) {
		return fmt.Sprintf("unknown workload_domain %q", e.WorkloadDomain), false
	}
	if !e.SecurityLevel.Valid() {
		return fmt.Sprintf("unknown security_level %q", e.SecurityLevel), false
	}
	if !e.OperatingModelRequired.Valid() {
		return fmt.Sprintf("unknown operating_model_required %q", e.OperatingModelRequired), false
	}
	if !oneOf(string(e.CatalogQuality), models.ValidCatalogQualities) {
		return fmt.Sprintf("unknown catalog_quality %q", e.CatalogQuality), false
	}
	for _, r := range e.ExpectedRuntimeModels {
		if !oneOf(string(r), models.ValidRuntimeModels) {
			return fmt.Sprintf("unknown expected_runtime_model %q", r), false
		}
	}
	for _, t := range e.SupportedTreatments {
		if !oneOf(string(t), models.ValidTreatments) {
			return fmt.Sprintf("unknown supported_treatment %q", t), false
		}
	}
	for _, t := range e.SupportedTimeCategories {
		if !oneOf(string(t), models.ValidTimeCategories) {
			return fmt.Sprintf("unknown supported_time_category %q", t), false
		}
	}
	for _, a := range e.AvailabilityModels {
		if !oneOf(string(a), models.ValidAvailabilityModels) {
			return fmt.Sprintf("unknown availability_model %q", a), false
		}
	}
	for _, n := range e.NotSuitableFor {
		if !oneOf(string(n), models.ValidNotSuitableReasons) {
			return fmt.Sprintf("unknown not_suitable_for reason %q", n), false
		}
	}
	if e.CostProfile != "" && !oneOf(string(e.CostProfile), models.ValidCostProfiles) {
		return fmt.Sprintf("unknown cost_profile %q", e.CostProfile), false
	}
	if e.Complexity != "" && !oneOf(string(e.Complexity), models.ValidComplexities) {
		return fmt.Sprintf("unknown complexity %q", e.Complexity), false
	}
	return "", true
}

func oneOf[T ~string](v string, allowed []T) bool {
	for _, a := range allowed {
		if v == string(a) {
			return true
		}
	}
	return false
}

// compareSemver compares two dotted version strings numerically,
// component by component; non-numeric/missing components compare as 0.
// Returns -1, 0, or 1 like strings.Compare.
func compareSemver(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < 3; i++ {
		an, bn := 0, 0
		if i < len(as) {
			an = parseComponent(as[i])
		}
		if i < len(bs) {
			bn = parseComponent(bs[i])
		}
		if an != bn {
			if an < bn {
				return -1
			}
			return 1
		}
	}
	return 0
}

func parseComponent(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
