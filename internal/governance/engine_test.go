package governance

import (
	"context"
	"testing"

	"github.com/archfit/archfit/models"
)

func TestLintNoPoliciesReturnsNil(t *testing.T) {
	e := NewEngine(nil)
	catalog := models.NewCatalog("1.0", "2026-01-01", "test", []models.CatalogEntry{
		{ArchitectureID: "a1", CatalogQuality: models.QualityCurated},
	})

	findings, err := e.Lint(context.Background(), catalog)
	if err != nil {
		t.Fatalf("Lint() error = %v", err)
	}
	if findings != nil {
		t.Errorf("Lint() = %v, want nil with no policies loaded", findings)
	}
}

func TestLintFlagsEntryMissingLearnURL(t *testing.T) {
	policy := &PolicyFile{
		Path: "missing_learn_url.rego",
		Name: "missing_learn_url",
		Content: `package archfit.governance

warn contains msg if {
	input.learn_url == ""
	msg := "missing learn_url"
}
`,
	}
	e := NewEngine([]*PolicyFile{policy})
	catalog := models.NewCatalog("1.0", "2026-01-01", "test", []models.CatalogEntry{
		{ArchitectureID: "a1", Name: "No docs", CatalogQuality: models.QualityCurated},
		{ArchitectureID: "a2", Name: "Has docs", CatalogQuality: models.QualityCurated, LearnURL: "https://example.com/a2"},
	})

	findings, err := e.Lint(context.Background(), catalog)
	if err != nil {
		t.Fatalf("Lint() error = %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("Lint() returned %d findings, want 1", len(findings))
	}
	if findings[0].ArchitectureID != "a1" {
		t.Errorf("findings[0].ArchitectureID = %q, want a1", findings[0].ArchitectureID)
	}
	if len(findings[0].Messages) != 1 || findings[0].Messages[0] != "missing learn_url" {
		t.Errorf("findings[0].Messages = %v, want [\"missing learn_url\"]", findings[0].Messages)
	}
	if findings[0].DecisionID == "" {
		t.Errorf("findings[0].DecisionID is empty, want a generated id")
	}
}
