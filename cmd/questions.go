package cmd

import (
	"encoding/json"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/archfit/archfit/internal/catalogio"
	"github.com/archfit/archfit/internal/contextio"
	"github.com/archfit/archfit/internal/engine"
	"github.com/archfit/archfit/internal/scoring"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the clarification questions warranted by an application context",
	RunE:  runQuestions,
}

func init() {
	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()

	catalog, _, err := catalogio.Load(fs, viper.GetString("catalog_path"))
	if err != nil {
		return err
	}
	appCtx, err := contextio.Load(fs, viper.GetString("context_path"))
	if err != nil {
		return err
	}

	eng, err := engine.New(catalog, scoring.DefaultConfig)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(eng.Questions(appCtx))
}
