package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/archfit/archfit/internal/catalogio"
	"github.com/archfit/archfit/internal/contextio"
	"github.com/archfit/archfit/internal/engine"
	"github.com/archfit/archfit/internal/governance"
	"github.com/archfit/archfit/internal/scoring"
	"github.com/archfit/archfit/internal/ui"
	"github.com/archfit/archfit/models"
)

var answerFlags map[string]string

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score catalog architectures against an application context",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringToStringVarP(&answerFlags, "answer", "a", nil, "answer a question_id=value pair (repeatable)")
	scoreCmd.Flags().Bool("interactive", false, "prompt for unanswered questions in a terminal")
	scoreCmd.Flags().Bool("no-interactive", false, "never prompt, even in a terminal")
	scoreCmd.Flags().IntP("top", "n", 0, "limit recommendations to the top N (0 = no limit)")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()

	catalogPath := viper.GetString("catalog_path")
	contextPath := viper.GetString("context_path")

	catalog, warnings, err := catalogio.Load(fs, catalogPath)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.ArchitectureID, w.Reason)
	}

	appCtx, err := contextio.Load(fs, contextPath)
	if err != nil {
		return err
	}

	cfg := scoring.DefaultConfig
	if wp := viper.GetString("weights_path"); wp != "" {
		overridden, err := loadWeightsOverride(fs, wp, cfg)
		if err != nil {
			return err
		}
		cfg = overridden
	}

	eng, err := engine.New(catalog, cfg)
	if err != nil {
		return err
	}

	answers := map[string]string{}
	for k, v := range answerFlags {
		answers[k] = v
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	noInteractive, _ := cmd.Flags().GetBool("no-interactive")
	if interactive && !noInteractive && ui.IsInteractive() {
		for _, q := range eng.Questions(appCtx) {
			if _, answered := answers[q.QuestionID]; answered {
				continue
			}
			value, err := ui.PromptAnswer(q)
			if err != nil {
				return err
			}
			answers[q.QuestionID] = value
		}
	}

	result, err := eng.Score(appCtx, answers)
	if err != nil {
		return err
	}

	top, _ := cmd.Flags().GetInt("top")
	limitRecommendations(result, top)

	if dir := viper.GetString("governance_dir"); dir != "" {
		findings, gerr := runGovernance(fs, dir, catalog)
		if gerr == nil && len(findings) > 0 {
			for _, f := range findings {
				fmt.Fprintf(os.Stderr, "governance: %s: %v\n", f.ArchitectureID, f.Messages)
			}
		}
	}

	return printResult(cmd, result)
}

// limitRecommendations truncates result.Recommendations to the top n
// entries in place. n <= 0 means no limit.
func limitRecommendations(result *models.ScoringResult, n int) {
	if n > 0 && n < len(result.Recommendations) {
		result.Recommendations = result.Recommendations[:n]
	}
}

func loadWeightsOverride(fs afero.Fs, path string, base scoring.Config) (scoring.Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return base, fmt.Errorf("read weights override: %w", err)
	}
	var weights scoring.Weights
	if err := catalogio.DecodeDocument(data, path, &weights); err != nil {
		return base, fmt.Errorf("decode weights override: %w", err)
	}
	overridden := base
	overridden.Weights = weights
	if err := overridden.Validate(); err != nil {
		return base, fmt.Errorf("invalid weights override: %w", err)
	}
	return overridden, nil
}

func runGovernance(fs afero.Fs, dir string, catalog *models.Catalog) ([]governance.Finding, error) {
	loader := governance.NewLoader(fs, dir)
	policies, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(policies) == 0 {
		return nil, nil
	}
	eng := governance.NewEngine(policies)
	return eng.Lint(cmdContext(), catalog)
}

func printResult(cmd *cobra.Command, result *models.ScoringResult) error {
	format := viper.GetString("output_format")
	if format == "table" {
		printTable(result)
		return nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printTable(result *models.ScoringResult) {
	fmt.Printf("%-30s %-10s %s\n", "ARCHITECTURE", "SCORE", "CONFIDENCE")
	for _, r := range result.Recommendations {
		fmt.Printf("%-30s %-10d %s\n", r.ArchitectureID, r.LikelihoodScore, result.Summary.ConfidenceLevel)
	}
	if len(result.Excluded) > 0 {
		fmt.Printf("\nExcluded (%d):\n", len(result.Excluded))
		for _, e := range result.Excluded {
			fmt.Printf("  %-30s %s\n", e.ArchitectureID, e.Reasons[0].Code)
		}
	}
}
