package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cobalt-ridge/gleaner/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [file...]",
	Short: "Process documents and export the result",
	Long: `Process the given documents (or stdin) and write the extraction result
in the chosen format.

Examples:
  gleaner export article.txt --format csv --output entities.csv
  gleaner export report.pdf --format txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")
		types, _ := cmd.Flags().GetStringSlice("types")

		renderer, ok := export.For(format)
		if !ok {
			return fmt.Errorf("unsupported export format %q (available: %s)",
				format, strings.Join(export.Formats(), ", "))
		}

		text, err := gatherText(cmd.Context(), args)
		if err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return errors.New("no text to process")
		}

		eng := buildEngine()
		defer eng.Close()

		res := eng.Process(cmd.Context(), text, types, true)
		data, err := renderer.Render(res)
		if err != nil {
			return err
		}

		if outPath == "" || outPath == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		slog.Info("export written", "path", outPath, "format", format, "bytes", len(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "Export format (json, csv, txt)")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().StringSliceP("types", "t", nil, "Entity types to keep (default: all)")
	rootCmd.AddCommand(exportCmd)
}
