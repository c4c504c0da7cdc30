package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cobalt-ridge/gleaner/internal/config"
	"github.com/cobalt-ridge/gleaner/internal/engine"
	"github.com/cobalt-ridge/gleaner/internal/engine/event"
	"github.com/cobalt-ridge/gleaner/internal/engine/labeler"
	"github.com/cobalt-ridge/gleaner/internal/logging"
	"github.com/cobalt-ridge/gleaner/internal/ui"

	// Register labeler implementations.
	_ "github.com/cobalt-ridge/gleaner/internal/engine/labeler/genai"
	_ "github.com/cobalt-ridge/gleaner/internal/engine/labeler/heuristic"
	_ "github.com/cobalt-ridge/gleaner/internal/engine/labeler/onnx"
	_ "github.com/cobalt-ridge/gleaner/internal/engine/labeler/prose"
	_ "github.com/cobalt-ridge/gleaner/internal/engine/labeler/remote"
)

var (
	cfgPath string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gleaner",
	Short: "Named entity and event extraction for news text",
	Long: `gleaner pulls named entities (people, organizations, locations, dates,
money, contacts) and events (announcements, meetings, legal actions,
economic changes, incidents) out of news text, merging a statistical
labeler with pattern rules.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Log.Level = lvl
		}
		logging.Init(cfg.Log.Format, logging.ParseLevel(cfg.Log.Level), cfg.Log.File)
		ui.ConfigureColors()
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file (default: discover gleaner.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Override log level (debug, info, warn, error)")
}

// buildEngine assembles the extraction engine from the loaded config.
func buildEngine() *engine.Engine {
	return engine.New(buildLabeler(cfg.Labeler), loadEventRules(cfg.Patterns.Path))
}

// buildLabeler resolves the configured statistical source. Extraction
// still works without one, so failures degrade to the null labeler.
func buildLabeler(lc config.LabelerConfig) labeler.Labeler {
	ctor, err := labeler.Get(lc.Kind)
	if err != nil {
		slog.Warn("unknown labeler kind, continuing without statistical source", "kind", lc.Kind)
		return labeler.Null{}
	}
	src, err := ctor(labeler.Config{
		Kind:     lc.Kind,
		ModelDir: lc.ModelDir,
		Endpoint: lc.Endpoint,
		APIKey:   lc.APIKey,
		Model:    lc.Model,
	})
	if err != nil {
		slog.Warn("labeler unavailable, continuing without statistical source", "kind", lc.Kind, "error", err)
		return labeler.Null{}
	}
	return src
}

func loadEventRules(path string) []event.Rule {
	if path == "" {
		return nil
	}
	rules, err := event.LoadRules(path)
	if err != nil {
		slog.Warn("falling back to built-in event rules", "path", path, "error", err)
		return nil
	}
	return rules
}
