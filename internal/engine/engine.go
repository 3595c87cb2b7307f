// Package engine wires the Context Normalizer, Intent Deriver, Question
// Generator, Eligibility Filter, Scorer, and Explanation Builder into the
// three pure entry points described in spec §2: Score, Questions, and
// Validate. The engine itself holds no mutable state beyond the
// immutable catalog handed to it at construction (spec §5).
package engine

import (
	"sort"

	"github.com/google/uuid"

	"github.com/archfit/archfit/internal/apperrors"
	"github.com/archfit/archfit/internal/eligibility"
	"github.com/archfit/archfit/internal/explain"
	"github.com/archfit/archfit/internal/intent"
	"github.com/archfit/archfit/internal/normalizer"
	"github.com/archfit/archfit/internal/question"
	"github.com/archfit/archfit/internal/scoring"
	"github.com/archfit/archfit/models"
)

// Engine binds an immutable catalog to the scoring pipeline. Safe for
// concurrent use by multiple scoring requests; it never mutates the
// catalog or any shared state.
type Engine struct {
	catalog *models.Catalog
	config  scoring.Config
}

// New builds an Engine over catalog using the given scoring
// configuration. Returns an error if cfg fails validation.
func New(catalog *models.Catalog, cfg scoring.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.CatalogInvalid, "scoring configuration invalid", err)
	}
	return &Engine{catalog: catalog, config: cfg}, nil
}

// deriveIntent runs the normalizer and intent deriver, the shared first
// half of every pipeline entry point.
func (e *Engine) deriveIntent(ctx *models.AppContext) *models.Intent {
	n := normalizer.Normalize(ctx)
	return intent.Derive(n)
}

// Questions returns the clarification questions warranted by ctx, per
// spec §4.4. It is side-effect free and safe to call repeatedly.
func (e *Engine) Questions(ctx *models.AppContext) []models.Question {
	return question.Generate(e.deriveIntent(ctx))
}

// Validate checks ctx and answers without running the scoring pipeline,
// per the CLI's `validate` subcommand (spec §6).
func (e *Engine) Validate(ctx *models.AppContext, answers map[string]string) error {
	if ctx.ApplicationName == "" {
		return apperrors.New(apperrors.ContextInvalid, "application_name is required", nil)
	}
	return validateAnswers(answers)
}

func validateAnswers(answers map[string]string) error {
	valid := question.ValidIDs()
	for id, value := range answers {
		if !valid[id] {
			return apperrors.New(apperrors.AnswerInvalid, "unknown question_id "+id, nil)
		}
		options := question.OptionValues(id)
		ok := false
		for _, o := range options {
			if o == value {
				ok = true
				break
			}
		}
		if !ok {
			return apperrors.New(apperrors.AnswerInvalid, "value "+value+" is not a valid option for "+id, nil)
		}
	}
	return nil
}

// Score runs the full pipeline: normalize → derive intent → fold in
// answers → filter → score → explain → summarize. answers may be nil.
// This is a pure function of (catalog, ctx, answers); RunID is the only
// field in the result that varies between otherwise-identical calls, and
// it is never read back into the pipeline.
func (e *Engine) Score(ctx *models.AppContext, answers map[string]string) (*models.ScoringResult, error) {
	if err := e.Validate(ctx, answers); err != nil {
		return nil, err
	}

	n := normalizer.Normalize(ctx)
	in := intent.Derive(n)
	question.Apply(in, answers)

	var recommendations []models.Recommendation
	var excluded []models.Exclusion
	var scored []scoring.Scored
	qualityByID := make(map[string]models.CatalogQuality)

	for i := range e.catalog.Entries {
		entry := &e.catalog.Entries[i]
		if reason, ok := eligibility.Evaluate(entry, in, n); !ok {
			excluded = append(excluded, models.Exclusion{
				ArchitectureID: entry.ArchitectureID,
				Name:           entry.Name,
				Reasons:        []models.ExclusionReason{*reason},
			})
			continue
		}
		s := scoring.Score(entry, in, n, e.config)
		scored = append(scored, s)
		qualityByID[entry.ArchitectureID] = entry.CatalogQuality
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scoring.Less(scored[i], scored[j], qualityByID[scored[i].ArchitectureID], qualityByID[scored[j].ArchitectureID])
	})

	for _, s := range scored {
		entry, _ := e.catalog.ByID(s.ArchitectureID)
		recommendations = append(recommendations, explain.BuildRecommendation(entry, s, in))
	}

	var summary models.Summary
	if len(scored) > 0 {
		summary = explain.BuildSummary(recommendations, scored[0], in)
	} else {
		summary = explain.BuildSummary(nil, scoring.Scored{}, in)
	}

	return &models.ScoringResult{
		RunID:           uuid.NewString(),
		Recommendations: recommendations,
		Excluded:        excluded,
		Summary:         summary,
	}, nil
}
