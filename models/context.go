package models

// AppModResult is a single per-platform feasibility statement produced by
// an upstream application-modernization assessment.
type AppModResult struct {
	Platform           string       `json:"platform" yaml:"platform" validate:"required"`
	Status             AppModStatus `json:"status" yaml:"status" validate:"required"`
	ContainerReady     bool         `json:"container_ready" yaml:"container_ready"`
	RecommendedTargets []string     `json:"recommended_targets,omitempty" yaml:"recommended_targets,omitempty"`
}

// ServerDetail is one observed server/VM backing the application.
type ServerDetail struct {
	Hostname    string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Role        string `json:"role,omitempty" yaml:"role,omitempty"` // web, app, db, unknown
	OS          string `json:"os,omitempty" yaml:"os,omitempty"`
	Utilization string `json:"utilization,omitempty" yaml:"utilization,omitempty"` // low, medium, high
	VMReadiness string `json:"vm_readiness,omitempty" yaml:"vm_readiness,omitempty"`
}

// AppContext is the bundle of raw application facts assembled from
// assessment data. It is read-only for the duration of a scoring run.
type AppContext struct {
	ApplicationName string `json:"application_name" yaml:"application_name" validate:"required"`

	DeclaredTreatment    Treatment    `json:"declared_treatment,omitempty" yaml:"declared_treatment,omitempty"`
	DeclaredTimeCategory TimeCategory `json:"declared_time_category,omitempty" yaml:"declared_time_category,omitempty"`

	BusinessCriticality string `json:"business_criticality" yaml:"business_criticality"`

	ServerCount             int             `json:"server_count" yaml:"server_count"`
	EnvironmentsPresent     []string        `json:"environments_present,omitempty" yaml:"environments_present,omitempty"`
	OSMix                   []string        `json:"os_mix,omitempty" yaml:"os_mix,omitempty"`
	UtilizationProfile      string          `json:"utilization_profile,omitempty" yaml:"utilization_profile,omitempty"`
	VMReadinessDistribution map[string]int  `json:"vm_readiness_distribution,omitempty" yaml:"vm_readiness_distribution,omitempty"`
	ServerDetails           []ServerDetail  `json:"server_details,omitempty" yaml:"server_details,omitempty"`

	DetectedTechnologies []string          `json:"detected_technologies,omitempty" yaml:"detected_technologies,omitempty"`
	ApprovedServices     map[string]string `json:"approved_services,omitempty" yaml:"approved_services,omitempty"`

	AppModResults []AppModResult `json:"app_mod_results,omitempty" yaml:"app_mod_results,omitempty"`

	ComplianceKeywords  []string `json:"compliance_keywords,omitempty" yaml:"compliance_keywords,omitempty"`
	NetworkExposureHint string   `json:"network_exposure_hint,omitempty" yaml:"network_exposure_hint,omitempty"`

	// Operating-model and maturity-related free text, when upstream
	// assessment data carries it directly (e.g. "CI/CD: yes", "SRE: no").
	OperationalHints []string `json:"operational_hints,omitempty" yaml:"operational_hints,omitempty"`
}
