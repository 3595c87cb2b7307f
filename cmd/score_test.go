package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/archfit/archfit/internal/scoring"
	"github.com/archfit/archfit/models"
)

func TestLoadWeightsOverrideAppliesValidWeights(t *testing.T) {
	fs := afero.NewMemMapFs()
	body := `{
		"TreatmentAlignment": 0.30,
		"PlatformCompatibility": 0.15,
		"AppModRecommended": 0.10,
		"RuntimeModelCompatibility": 0.10,
		"ServiceOverlap": 0.10,
		"AvailabilityAlignment": 0.10,
		"OperatingModelFit": 0.08,
		"ComplexityTolerance": 0.02,
		"BrowseTagOverlap": 0.05,
		"CostPostureAlignment": 0.00
	}`
	_ = afero.WriteFile(fs, "/weights.json", []byte(body), 0o644)

	cfg, err := loadWeightsOverride(fs, "/weights.json", scoring.DefaultConfig)
	if err != nil {
		t.Fatalf("loadWeightsOverride() error = %v", err)
	}
	if cfg.Weights.TreatmentAlignment != 0.30 {
		t.Errorf("TreatmentAlignment = %f, want 0.30", cfg.Weights.TreatmentAlignment)
	}
}

func TestLoadWeightsOverrideRejectsBadSum(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/weights.json", []byte(`{"TreatmentAlignment": 0.99}`), 0o644)

	_, err := loadWeightsOverride(fs, "/weights.json", scoring.DefaultConfig)
	if err == nil {
		t.Errorf("loadWeightsOverride() error = nil, want error for a weight sum that isn't 1.0")
	}
}

func TestLoadWeightsOverrideMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := loadWeightsOverride(fs, "/does-not-exist.json", scoring.DefaultConfig)
	if err == nil {
		t.Errorf("loadWeightsOverride() error = nil, want error for missing file")
	}
}

func TestLimitRecommendationsTruncatesToN(t *testing.T) {
	result := &models.ScoringResult{
		Recommendations: []models.Recommendation{
			{ArchitectureID: "a1"}, {ArchitectureID: "a2"}, {ArchitectureID: "a3"},
		},
	}
	limitRecommendations(result, 2)
	if len(result.Recommendations) != 2 {
		t.Fatalf("len(Recommendations) = %d, want 2", len(result.Recommendations))
	}
	if result.Recommendations[0].ArchitectureID != "a1" || result.Recommendations[1].ArchitectureID != "a2" {
		t.Errorf("Recommendations = %v, want the first 2 in original order", result.Recommendations)
	}
}

func TestLimitRecommendationsZeroMeansNoLimit(t *testing.T) {
	result := &models.ScoringResult{
		Recommendations: []models.Recommendation{{ArchitectureID: "a1"}, {ArchitectureID: "a2"}},
	}
	limitRecommendations(result, 0)
	if len(result.Recommendations) != 2 {
		t.Errorf("len(Recommendations) = %d, want 2 (n <= 0 means no limit)", len(result.Recommendations))
	}
}

func TestLimitRecommendationsNLargerThanLengthIsNoop(t *testing.T) {
	result := &models.ScoringResult{
		Recommendations: []models.Recommendation{{ArchitectureID: "a1"}},
	}
	limitRecommendations(result, 5)
	if len(result.Recommendations) != 1 {
		t.Errorf("len(Recommendations) = %d, want 1", len(result.Recommendations))
	}
}

func TestRunGovernanceNoPoliciesReturnsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	catalog := models.NewCatalog("1.0", "2026-01-01", "test", nil)

	findings, err := runGovernance(fs, "/nonexistent", catalog)
	if err != nil {
		t.Fatalf("runGovernance() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("runGovernance() = %v, want empty with no policy directory", findings)
	}
}

func TestPrintResultJSONWritesToCommandOutput(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	result := &models.ScoringResult{RunID: "run-1"}
	if err := printResult(cmd, result); err != nil {
		t.Fatalf("printResult() error = %v", err)
	}

	var decoded models.ScoringResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.RunID != "run-1" {
		t.Errorf("RunID = %q, want run-1", decoded.RunID)
	}
}
