package governance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/archfit/archfit/models"
)

// DefaultPolicyPackage is the Rego package path governance policies must
// declare to be picked up by Lint.
const DefaultPolicyPackage = "archfit.governance"

// Engine wraps OPA for catalog governance linting. All evaluation is
// local; no network calls are made.
type Engine struct {
	policies      []*PolicyFile
	policyPackage string
}

// NewEngine builds an Engine from already-loaded policies.
func NewEngine(policies []*PolicyFile) *Engine {
	return &Engine{policies: policies, policyPackage: DefaultPolicyPackage}
}

// Finding is one governance warning about a single catalog entry.
type Finding struct {
	DecisionID     string    `json:"decision_id"`
	ArchitectureID string    `json:"architecture_id"`
	Messages       []string  `json:"messages"`
	EvaluatedAt    time.Time `json:"evaluated_at"`
}

// entryInput is the shape exposed to governance Rego policies as `input`.
type entryInput struct {
	ArchitectureID string   `json:"architecture_id"`
	Name           string   `json:"name"`
	CatalogQuality string   `json:"catalog_quality"`
	LearnURL       string   `json:"learn_url"`
	CoreServices   []string `json:"core_services"`
	BrowseTags     []string `json:"browse_tags"`
}

// Lint evaluates every catalog entry against the loaded policies' "warn"
// rules, returning one Finding per entry that triggered at least one
// warning. Lint never excludes or rescales anything the scorer sees —
// it is purely advisory.
func (e *Engine) Lint(ctx context.Context, catalog *models.Catalog) ([]Finding, error) {
	if len(e.policies) == 0 {
		return nil, nil
	}

	modules := make([]func(*rego.Rego), len(e.policies))
	for i, p := range e.policies {
		modules[i] = rego.Module(p.Path, p.Content)
	}

	var findings []Finding
	for i := range catalog.Entries {
		entry := &catalog.Entries[i]
		input := entryInput{
			ArchitectureID: entry.ArchitectureID,
			Name:           entry.Name,
			CatalogQuality: string(entry.CatalogQuality),
			LearnURL:       entry.LearnURL,
			CoreServices:   entry.CoreServices,
			BrowseTags:     entry.BrowseTags,
		}

		messages, err := e.evaluateWarnings(ctx, input, modules)
		if err != nil {
			return nil, fmt.Errorf("evaluate governance policy for %s: %w", entry.ArchitectureID, err)
		}
		if len(messages) == 0 {
			continue
		}
		findings = append(findings, Finding{
			DecisionID:     uuid.NewString(),
			ArchitectureID: entry.ArchitectureID,
			Messages:       messages,
			EvaluatedAt:    time.Now().UTC(),
		})
	}
	return findings, nil
}

// evaluateWarnings runs this engine's "warn" set-rule against a single
// entry's input and flattens whatever string set it produces. An
// undefined rule (a policy that declares no warn rule at all) is not an
// error — it simply contributes no findings.
func (e *Engine) evaluateWarnings(ctx context.Context, input any, modules []func(*rego.Rego)) ([]string, error) {
	preparedOpts := append([]func(*rego.Rego){
		rego.Query(fmt.Sprintf("data.%s.warn", e.policyPackage)),
		rego.Input(input),
	}, modules...)

	resultSet, err := rego.New(preparedOpts...).Eval(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "undefined") {
			return nil, nil
		}
		return nil, err
	}
	return flattenStringSets(resultSet), nil
}

// flattenStringSets pulls every string out of a rego.ResultSet's
// expression values, skipping expressions that didn't evaluate to a set.
func flattenStringSets(resultSet rego.ResultSet) []string {
	var out []string
	for _, res := range resultSet {
		for _, expr := range res.Expressions {
			values, ok := expr.Value.([]any)
			if !ok {
				continue
			}
			for _, v := range values {
				if msg, ok := v.(string); ok {
					out = append(out, msg)
				}
			}
		}
	}
	return out
}
