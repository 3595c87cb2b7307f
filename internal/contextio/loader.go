// Package contextio loads raw application-assessment documents (spec §6
// "Context input") and maps their external, historically inconsistent
// shape into models.AppContext. It is the one place that tolerates
// upstream naming quirks (the business_crtiticality misspelling, the
// "App Mod results" field name) so every other package only ever sees
// the clean internal model.
package contextio

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/archfit/archfit/internal/apperrors"
	"github.com/archfit/archfit/internal/catalogio"
	"github.com/archfit/archfit/models"
)

// rawAppOverview is the nested app_overview block of the external
// document. business_crtiticality is the upstream misspelling; it is
// read only when the correctly spelled business_criticality is empty.
type rawAppOverview struct {
	Application          string `json:"application" yaml:"application"`
	AppType              string `json:"app_type" yaml:"app_type"`
	BusinessCriticality  string `json:"business_criticality,omitempty" yaml:"business_criticality,omitempty"`
	BusinessCrtiticality string `json:"business_crtiticality,omitempty" yaml:"business_crtiticality,omitempty"`
	Treatment            string `json:"treatment" yaml:"treatment"`
}

// rawApprovedService is one entry of app_approved_azure_services[]: a
// detected technology mapped to the cloud service approved to run it.
type rawApprovedService struct {
	Technology string `json:"technology" yaml:"technology"`
	Service    string `json:"service" yaml:"service"`
}

// rawAppModResult mirrors one "App Mod results[]" entry.
type rawAppModResult struct {
	Platform           string   `json:"platform" yaml:"platform"`
	Status             string   `json:"status" yaml:"status"`
	ContainerReady     bool     `json:"container_ready" yaml:"container_ready"`
	RecommendedTargets []string `json:"recommended_targets,omitempty" yaml:"recommended_targets,omitempty"`
}

// rawServerDetail mirrors one server_details[] entry.
type rawServerDetail struct {
	Hostname    string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Role        string `json:"role,omitempty" yaml:"role,omitempty"`
	OS          string `json:"os,omitempty" yaml:"os,omitempty"`
	Utilization string `json:"utilization,omitempty" yaml:"utilization,omitempty"`
	VMReadiness string `json:"vm_readiness,omitempty" yaml:"vm_readiness,omitempty"`
}

// rawDocument mirrors the context input document described in spec §6.
type rawDocument struct {
	AppOverview               rawAppOverview        `json:"app_overview" yaml:"app_overview"`
	DetectedTechnologyRunning []string              `json:"detected_technology_running,omitempty" yaml:"detected_technology_running,omitempty"`
	AppApprovedAzureServices  []rawApprovedService  `json:"app_approved_azure_services,omitempty" yaml:"app_approved_azure_services,omitempty"`
	ServerDetails             []rawServerDetail     `json:"server_details,omitempty" yaml:"server_details,omitempty"`
	AppModResults             []rawAppModResult     `json:"App Mod results,omitempty" yaml:"App Mod results,omitempty"`
	ComplianceKeywords        []string              `json:"compliance_keywords,omitempty" yaml:"compliance_keywords,omitempty"`
	NetworkExposureHint       string                `json:"network_exposure_hint,omitempty" yaml:"network_exposure_hint,omitempty"`
	OperationalHints          []string              `json:"operational_hints,omitempty" yaml:"operational_hints,omitempty"`
	EnvironmentsPresent       []string              `json:"environments_present,omitempty" yaml:"environments_present,omitempty"`
}

// Load reads a context document and maps it into an AppContext. It fails
// with apperrors.ContextInvalid when application_name cannot be
// determined or the document fails struct validation.
func Load(fs afero.Fs, path string) (*models.AppContext, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ContextInvalid, "read context file", err)
	}

	var doc rawDocument
	if err := decode(data, path, &doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ContextInvalid, "parse context document", err)
	}

	ctx := mapDocument(doc)
	if ctx.ApplicationName == "" {
		return nil, apperrors.New(apperrors.ContextInvalid, "app_overview.application is required", nil)
	}
	if err := models.ValidateStruct(ctx); err != nil {
		return nil, apperrors.Wrap(apperrors.ContextInvalid, "context failed validation", err)
	}
	return ctx, nil
}

func mapDocument(doc rawDocument) *models.AppContext {
	criticality := doc.AppOverview.BusinessCriticality
	if criticality == "" {
		criticality = doc.AppOverview.BusinessCrtiticality
	}

	ctx := &models.AppContext{
		ApplicationName:      strings.TrimSpace(doc.AppOverview.Application),
		DeclaredTreatment:    models.Treatment(doc.AppOverview.Treatment),
		BusinessCriticality:  criticality,
		EnvironmentsPresent:  doc.EnvironmentsPresent,
		DetectedTechnologies: doc.DetectedTechnologyRunning,
		ComplianceKeywords:   doc.ComplianceKeywords,
		NetworkExposureHint:  doc.NetworkExposureHint,
		OperationalHints:     doc.OperationalHints,
	}

	if len(doc.AppApprovedAzureServices) > 0 {
		ctx.ApprovedServices = make(map[string]string, len(doc.AppApprovedAzureServices))
		for _, s := range doc.AppApprovedAzureServices {
			if s.Technology == "" {
				continue
			}
			ctx.ApprovedServices[s.Technology] = s.Service
		}
	}

	if len(doc.ServerDetails) > 0 {
		ctx.ServerCount = len(doc.ServerDetails)
		ctx.ServerDetails = make([]models.ServerDetail, 0, len(doc.ServerDetails))
		util := map[string]int{}
		for _, s := range doc.ServerDetails {
			ctx.ServerDetails = append(ctx.ServerDetails, models.ServerDetail{
				Hostname:    s.Hostname,
				Role:        s.Role,
				OS:          s.OS,
				Utilization: s.Utilization,
				VMReadiness: s.VMReadiness,
			})
			if s.OS != "" {
				ctx.OSMix = append(ctx.OSMix, s.OS)
			}
			if s.VMReadiness != "" {
				if ctx.VMReadinessDistribution == nil {
					ctx.VMReadinessDistribution = map[string]int{}
				}
				ctx.VMReadinessDistribution[s.VMReadiness]++
			}
			if s.Utilization != "" {
				util[s.Utilization]++
			}
		}
		ctx.UtilizationProfile = dominant(util)
	}

	if len(doc.AppModResults) > 0 {
		ctx.AppModResults = make([]models.AppModResult, 0, len(doc.AppModResults))
		for _, r := range doc.AppModResults {
			ctx.AppModResults = append(ctx.AppModResults, models.AppModResult{
				Platform:           r.Platform,
				Status:             models.AppModStatus(r.Status),
				ContainerReady:     r.ContainerReady,
				RecommendedTargets: r.RecommendedTargets,
			})
		}
	}

	return ctx
}

// dominant returns the key with the highest count, breaking ties
// lexicographically so the result is deterministic.
func dominant(counts map[string]int) string {
	best, bestN := "", -1
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best
}

func decode(data []byte, path string, out any) error {
	return catalogio.DecodeDocument(data, path, out)
}
