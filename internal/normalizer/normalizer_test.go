package normalizer

import (
	"reflect"
	"testing"

	"github.com/archfit/archfit/models"
)

func TestNormalizeCriticalityAliases(t *testing.T) {
	cases := []struct {
		raw  string
		want models.BusinessCriticality
	}{
		{"High", models.CriticalityHigh},
		{"  moderate ", models.CriticalityMedium},
		{"MISSION_CRITICAL", models.CriticalityMissionCritical},
		{"extreme", models.CriticalityMissionCritical},
		{"low", models.CriticalityLow},
	}
	for _, c := range cases {
		got := normalizeCriticality(c.raw)
		if got.Value != c.want {
			t.Errorf("normalizeCriticality(%q).Value = %q, want %q", c.raw, got.Value, c.want)
		}
		if got.Confidence != models.ConfidenceHigh {
			t.Errorf("normalizeCriticality(%q).Confidence = %q, want high", c.raw, got.Confidence)
		}
	}
}

func TestNormalizeCriticalityUnknownDefaultsToMedium(t *testing.T) {
	got := normalizeCriticality("not a real value")
	if got.Value != models.CriticalityMedium {
		t.Errorf("Value = %q, want medium", got.Value)
	}
	if got.Confidence != models.ConfidenceUnknown {
		t.Errorf("Confidence = %q, want unknown", got.Confidence)
	}
}

func TestCanonicalizeTechnologies(t *testing.T) {
	raw := []string{"Java", "java", "Node.js", "K8S", "not a real technology", "Java and Spring"}
	got := canonicalizeTechnologies(raw)
	want := []string{"java", "nodejs", "kubernetes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("canonicalizeTechnologies() = %v, want %v", got, want)
	}
}

func TestCanonicalizeTechnologiesRejectsProseFragments(t *testing.T) {
	raw := []string{"Java with legacy dependencies", "runs on Tomcat and Redis"}
	got := canonicalizeTechnologies(raw)
	if got != nil {
		t.Errorf("canonicalizeTechnologies() = %v, want nil (all entries are prose)", got)
	}
}

func TestNormalizePassesThroughStructuralFields(t *testing.T) {
	ctx := &models.AppContext{
		ApplicationName:     "app1",
		ServerCount:         3,
		OSMix:               []string{"Ubuntu 22.04"},
		ComplianceKeywords:  []string{"pci"},
		NetworkExposureHint: "external",
		DeclaredTreatment:   models.TreatmentRehost,
	}
	n := Normalize(ctx)
	if n.ApplicationName != "app1" {
		t.Errorf("ApplicationName = %q, want app1", n.ApplicationName)
	}
	if n.ServerCount != 3 {
		t.Errorf("ServerCount = %d, want 3", n.ServerCount)
	}
	if n.NetworkExposureHint != "external" {
		t.Errorf("NetworkExposureHint = %q, want external", n.NetworkExposureHint)
	}
	if n.DeclaredTreatment != models.TreatmentRehost {
		t.Errorf("DeclaredTreatment = %q, want rehost", n.DeclaredTreatment)
	}
}
