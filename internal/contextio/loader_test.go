package contextio

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/archfit/archfit/internal/apperrors"
)

func writeFile(t *testing.T, fs afero.Fs, path, contents string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(contents), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadValidContext(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "context.json", `{
  "app_overview": {
    "application": "billing-api",
    "app_type": "api",
    "business_criticality": "high",
    "treatment": "rehost"
  },
  "detected_technology_running": ["java", "docker"],
  "server_details": [
    {"hostname": "vm1", "os": "Ubuntu 22.04", "utilization": "medium", "vm_readiness": "ready"},
    {"hostname": "vm2", "os": "Ubuntu 22.04", "utilization": "high", "vm_readiness": "ready"}
  ],
  "compliance_keywords": ["pci"]
}`)

	ctx, err := Load(fs, "context.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ctx.ApplicationName != "billing-api" {
		t.Errorf("ApplicationName = %q, want billing-api", ctx.ApplicationName)
	}
	if ctx.ServerCount != 2 {
		t.Errorf("ServerCount = %d, want 2", ctx.ServerCount)
	}
	if ctx.UtilizationProfile != "high" && ctx.UtilizationProfile != "medium" {
		t.Errorf("UtilizationProfile = %q, want high or medium", ctx.UtilizationProfile)
	}
	if len(ctx.ComplianceKeywords) != 1 || ctx.ComplianceKeywords[0] != "pci" {
		t.Errorf("ComplianceKeywords = %v, want [pci]", ctx.ComplianceKeywords)
	}
}

func TestLoadMisspelledBusinessCriticalityField(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "context.json", `{
  "app_overview": {
    "application": "legacy-app",
    "business_crtiticality": "medium",
    "treatment": "retain"
  }
}`)

	ctx, err := Load(fs, "context.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ctx.BusinessCriticality != "medium" {
		t.Errorf("BusinessCriticality = %q, want medium (from misspelled field)", ctx.BusinessCriticality)
	}
}

func TestLoadPrefersCorrectlySpelledField(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "context.json", `{
  "app_overview": {
    "application": "dual-field-app",
    "business_criticality": "high",
    "business_crtiticality": "low",
    "treatment": "retain"
  }
}`)

	ctx, err := Load(fs, "context.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ctx.BusinessCriticality != "high" {
		t.Errorf("BusinessCriticality = %q, want high", ctx.BusinessCriticality)
	}
}

func TestLoadMissingApplicationNameFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "context.json", `{"app_overview": {"treatment": "retain"}}`)

	_, err := Load(fs, "context.json")
	if !apperrors.Is(err, apperrors.ContextInvalid) {
		t.Errorf("Load() error = %v, want ContextInvalid", err)
	}
}

func TestLoadAppModResults(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "context.json", `{
  "app_overview": {"application": "app1", "treatment": "retain"},
  "App Mod results": [
    {"platform": "aks", "status": "supported", "container_ready": true}
  ]
}`)

	ctx, err := Load(fs, "context.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ctx.AppModResults) != 1 || ctx.AppModResults[0].Platform != "aks" {
		t.Errorf("AppModResults = %v, want one entry for aks", ctx.AppModResults)
	}
}

func TestLoadApprovedServices(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "context.json", `{
  "app_overview": {"application": "app1", "treatment": "retain"},
  "app_approved_azure_services": [
    {"technology": "postgresql", "service": "Azure Database for PostgreSQL"}
  ]
}`)

	ctx, err := Load(fs, "context.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ctx.ApprovedServices["postgresql"] != "Azure Database for PostgreSQL" {
		t.Errorf("ApprovedServices[postgresql] = %q, want Azure Database for PostgreSQL", ctx.ApprovedServices["postgresql"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := Load(fs, "missing.json")
	if !apperrors.Is(err, apperrors.ContextInvalid) {
		t.Errorf("Load() error = %v, want ContextInvalid", err)
	}
}
