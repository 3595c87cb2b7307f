package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/archfit/archfit/internal/catalogio"
	"github.com/archfit/archfit/internal/contextio"
	"github.com/archfit/archfit/internal/engine"
	"github.com/archfit/archfit/internal/scoring"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a catalog, context, and any --answer pairs without scoring",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringToStringVar(&answerFlags, "answer", nil, "answer a question_id=value pair (repeatable)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()

	catalog, warnings, err := catalogio.Load(fs, viper.GetString("catalog_path"))
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

	if err := eng.Validate(appCtx, answerFlags); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	for _, w := range warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s: %s\n", w.ArchitectureID, w.Reason)
	}
	return nil
}
