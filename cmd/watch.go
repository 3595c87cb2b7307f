package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/archfit/archfit/internal/catalogio"
	"github.com/archfit/archfit/internal/contextio"
	"github.com/archfit/archfit/internal/engine"
	"github.com/archfit/archfit/internal/scoring"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-score whenever the catalog or context document changes on disk",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// debounceDelay batches rapid successive writes to the same file (many
// editors write a temp file then rename it, firing several events per
// save) into a single re-score.
const debounceDelay = 300 * time.Millisecond

func runWatch(cmd *cobra.Command, args []string) error {
	catalogPath := viper.GetString("catalog_path")
	contextPath := viper.GetString("context_path")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, p := range []string{catalogPath, contextPath} {
		if err := watcher.Add(filepath.Dir(p)); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}

	if err := rescore(cmd, catalogPath, contextPath); err != nil {
		fmt.Fprintf(os.Stderr, "archfit: initial score failed: %v\n", err)
	}

	var timer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(catalogPath) &&
				filepath.Clean(event.Name) != filepath.Clean(contextPath) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				if err := rescore(cmd, catalogPath, contextPath); err != nil {
					fmt.Fprintf(os.Stderr, "archfit: re-score failed: %v\n", err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "archfit: watch error: %v\n", err)
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		}
	}
}

func rescore(cmd *cobra.Command, catalogPath, contextPath string) error {
	fs := afero.NewOsFs()

	catalog, _, err := catalogio.LoadLocked(fs, catalogPath)
	if err != nil {
		return err
	}
	appCtx, err := contextio.Load(fs, contextPath)
	if err != nil {
		return err
	}

	eng, err := engine.New(catalog, scoring.DefaultConfig)
	if err != nil {
		return err
	}

	result, err := eng.Score(appCtx, nil)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
