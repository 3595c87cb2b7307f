package governance

import (
	"testing"

	"github.com/spf13/afero"
)

func TestLoadAllMissingDirectoryReturnsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	l := NewLoader(fs, "/policies")

	policies, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(policies) != 0 {
		t.Errorf("LoadAll() = %v, want empty when directory is absent", policies)
	}
}

func TestLoadAllReadsRegoFilesRecursively(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/policies/quality.rego", []byte("package archfit.governance\nwarn[msg] { false }\n"), 0o644)
	_ = afero.WriteFile(fs, "/policies/nested/services.rego", []byte("package archfit.governance\nwarn[msg] { false }\n"), 0o644)
	_ = afero.WriteFile(fs, "/policies/README.md", []byte("not a policy"), 0o644)

	l := NewLoader(fs, "/policies")
	policies, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(policies) != 2 {
		t.Fatalf("LoadAll() returned %d policies, want 2 (non-.rego files skipped)", len(policies))
	}

	names := map[string]bool{}
	for _, p := range policies {
		names[p.Name] = true
	}
	if !names["quality"] || !names["services"] {
		t.Errorf("policy names = %v, want quality and services", names)
	}
}

func TestDefaultPolicyPath(t *testing.T) {
	got := DefaultPolicyPath("/project")
	want := "/project/" + DefaultPoliciesDir
	if got != want {
		t.Errorf("DefaultPolicyPath() = %q, want %q", got, want)
	}
}
