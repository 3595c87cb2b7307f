package models

import "github.com/go-playground/validator/v10"

// ClassificationMeta records the provenance of a single classified field,
// so every catalog-driven decision can be traced back to why the field has
// the value it has.
type ClassificationMeta struct {
	Confidence SignalConfidence `json:"confidence" yaml:"confidence"`
	Source     string           `json:"source" yaml:"source"`
}

// CatalogEntry is one reference architecture in the compiled catalog.
type CatalogEntry struct {
	ArchitectureID string `json:"architecture_id" yaml:"architecture_id" validate:"required"`
	Name           string `json:"name" yaml:"name" validate:"required"`
	PatternName    string `json:"pattern_name" yaml:"pattern_name"`
	Description    string `json:"description" yaml:"description"`
	LearnURL       string `json:"learn_url" yaml:"learn_url"`

	Family         Family         `json:"family" yaml:"family" validate:"required"`
	WorkloadDomain WorkloadDomain `json:"workload_domain" yaml:"workload_domain" validate:"required"`

	ExpectedRuntimeModels   []RuntimeModel        `json:"expected_runtime_models" yaml:"expected_runtime_models"`
	SupportedTreatments     []Treatment           `json:"supported_treatments" yaml:"supported_treatments"`
	SupportedTimeCategories []TimeCategory        `json:"supported_time_categories" yaml:"supported_time_categories"`
	AvailabilityModels      []AvailabilityModel   `json:"availability_models" yaml:"availability_models"`

	SecurityLevel          SecurityLevel  `json:"security_level" yaml:"security_level" validate:"required"`
	OperatingModelRequired OperatingModel `json:"operating_model_required" yaml:"operating_model_required" validate:"required"`
	CostProfile            CostProfile    `json:"cost_profile" yaml:"cost_profile"`
	Complexity             Complexity     `json:"complexity" yaml:"complexity"`

	CoreServices       []string `json:"core_services" yaml:"core_services"`
	SupportingServices []string `json:"supporting_services" yaml:"supporting_services"`
	BrowseTags         []string `json:"browse_tags" yaml:"browse_tags"`
	BrowseCategories   []string `json:"browse_categories" yaml:"browse_categories"`

	NotSuitableFor []NotSuitableReason `json:"not_suitable_for" yaml:"not_suitable_for"`
	CatalogQuality CatalogQuality      `json:"catalog_quality" yaml:"catalog_quality" validate:"required"`

	FieldMeta map[string]ClassificationMeta `json:"field_meta,omitempty" yaml:"field_meta,omitempty"`
}

// Catalog is the loaded, indexed, immutable in-memory catalog. Callers
// never mutate it after Load returns; it is safe to share across
// concurrent scoring requests without locking.
type Catalog struct {
	Version      string
	GeneratedAt  string
	SourceRepo   string
	Entries      []CatalogEntry
	byID         map[string]*CatalogEntry
}

// NewCatalog indexes entries by architecture_id. Callers should have
// already validated uniqueness; NewCatalog panics on a duplicate id
// because that invariant must be enforced before this point (see
// internal/catalogio, which is the only production caller).
func NewCatalog(version, generatedAt, sourceRepo string, entries []CatalogEntry) *Catalog {
	c := &Catalog{
		Version:     version,
		GeneratedAt: generatedAt,
		SourceRepo:  sourceRepo,
		Entries:     entries,
		byID:        make(map[string]*CatalogEntry, len(entries)),
	}
	for i := range c.Entries {
		e := &c.Entries[i]
		if _, exists := c.byID[e.ArchitectureID]; exists {
			panic("models: duplicate architecture_id " + e.ArchitectureID + " reached NewCatalog unvalidated")
		}
		c.byID[e.ArchitectureID] = e
	}
	return c
}

// ByID looks up a catalog entry by its architecture_id.
func (c *Catalog) ByID(id string) (*CatalogEntry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int {
	return len(c.Entries)
}

var validate = validator.New()

// ValidateStruct runs go-playground/validator struct-tag validation on any
// model in this package and collapses the result into a single error.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	return nil
}
