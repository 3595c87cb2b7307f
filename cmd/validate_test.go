package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const validCatalogYAML = `
version: "1.0"
architectures:
  - architecture_id: a1
    name: Single VM baseline
    family: foundation
    workload_domain: general
    security_level: basic
    operating_model_required: traditional_it
    catalog_quality: curated
`

const validContextYAML = `
app_overview:
  application: app1
server_details:
  - hostname: vm1
    os: Ubuntu 22.04
`

func TestRunValidateOK(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	contextPath := filepath.Join(dir, "context.yaml")
	if err := os.WriteFile(catalogPath, []byte(validCatalogYAML), 0o644); err != nil {
		t.Fatalf("write catalog fixture: %v", err)
	}
	if err := os.WriteFile(contextPath, []byte(validContextYAML), 0o644); err != nil {
		t.Fatalf("write context fixture: %v", err)
	}

	viper.Set("catalog_path", catalogPath)
	viper.Set("context_path", contextPath)
	defer viper.Reset()

	answerFlags = nil
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := runValidate(cmd, nil); err != nil {
		t.Fatalf("runValidate() error = %v", err)
	}
	if buf.String() == "" {
		t.Errorf("runValidate() produced no output, want an ok confirmation")
	}
}

func TestRunValidateMissingApplicationName(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	contextPath := filepath.Join(dir, "context.yaml")
	if err := os.WriteFile(catalogPath, []byte(validCatalogYAML), 0o644); err != nil {
		t.Fatalf("write catalog fixture: %v", err)
	}
	if err := os.WriteFile(contextPath, []byte("server_details:\n  - hostname: vm1\n"), 0o644); err != nil {
		t.Fatalf("write context fixture: %v", err)
	}

	viper.Set("catalog_path", catalogPath)
	viper.Set("context_path", contextPath)
	defer viper.Reset()

	answerFlags = nil
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := runValidate(cmd, nil); err == nil {
		t.Errorf("runValidate() error = nil, want error for missing application_name")
	}
}
