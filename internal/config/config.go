// Package config resolves archfit's CLI configuration (catalog/context
// default paths, scoring-weight overrides, governance policy directory)
// from flags, environment variables, and an optional config file, in
// that precedence order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = ".archfit"
	envPrefix  = "ARCHFIT"
)

// AppConfig is the fully resolved CLI configuration.
type AppConfig struct {
	CatalogPath    string `mapstructure:"catalog_path"`
	ContextPath    string `mapstructure:"context_path"`
	WeightsPath    string `mapstructure:"weights_path"`
	GovernanceDir  string `mapstructure:"governance_dir"`
	OutputFormat   string `mapstructure:"output_format"`
	Verbose        bool   `mapstructure:"verbose"`
	NoTelemetry    bool   `mapstructure:"no_telemetry"`
}

// Global holds the process-wide resolved configuration, populated by
// Init and read by every command after cobra.OnInitialize runs.
var Global AppConfig

// Init reads an optional .env file, binds ARCHFIT_* environment
// variables, searches for a config file named .archfit (any extension
// viper supports) in ./.archfit if that directory exists, then the home
// directory, then the working directory, and unmarshals the result into
// Global. A config file that cannot be read is reported and defaults are
// used; a failure to unmarshal into Global exits the process with status 1.
func Init() {
	if err := godotenv.Load(); err != nil {
		// Absence of a .env file is normal, not an error worth reporting.
		_ = err
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if _, err := os.Stat(".archfit"); !os.IsNotExist(err) {
			viper.AddConfigPath(".archfit")
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "archfit: error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	} else if viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "archfit: using config file:", viper.ConfigFileUsed())
	}

	viper.SetDefault("catalog_path", "catalog.yaml")
	viper.SetDefault("context_path", "context.yaml")
	viper.SetDefault("weights_path", "")
	viper.SetDefault("governance_dir", DefaultGovernanceDir())
	viper.SetDefault("output_format", "json")

	if err := viper.Unmarshal(&Global); err != nil {
		fmt.Fprintf(os.Stderr, "archfit: error unmarshaling config: %s\n", err)
		os.Exit(1)
	}
}

// DefaultGovernanceDir returns the conventional governance policy
// directory relative to the current working directory.
func DefaultGovernanceDir() string {
	return filepath.Join(".archfit", "governance")
}

// BindPersistentFlags wires cmd's persistent flags to viper keys of the
// same name, so flag > env > config file > default precedence holds for
// every subcommand sharing rootCmd.
func BindPersistentFlags(cmd *cobra.Command) {
	for _, name := range []string{"catalog-path", "context-path", "weights-path", "governance-dir", "output-format", "verbose", "no-telemetry"} {
		if f := cmd.PersistentFlags().Lookup(name); f != nil {
			_ = viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), f)
		}
	}
}
