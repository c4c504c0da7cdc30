package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cobalt-ridge/gleaner/internal/document"
	"github.com/cobalt-ridge/gleaner/internal/ui"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file...]",
	Short: "Extract entities and events from documents or stdin",
	Long: `Extract named entities and events from the given documents (txt, pdf,
docx, html), or from stdin when no files are named. Multiple files are
concatenated before processing.

Examples:
  gleaner extract article.txt
  gleaner extract report.pdf notes.docx --types PERSON,ORGANIZATION
  cat article.txt | gleaner extract --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		types, _ := cmd.Flags().GetStringSlice("types")
		noEvents, _ := cmd.Flags().GetBool("no-events")
		asJSON, _ := cmd.Flags().GetBool("json")

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

		res := eng.Process(cmd.Context(), text, types, !noEvents)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		fmt.Println(ui.RenderResult(res, eng.Registry(), ui.Width()))
		return nil
	},
}

// gatherText reads the named documents, or stdin when none are given.
func gatherText(ctx context.Context, paths []string) (string, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	reader := document.NewReader()
	contents := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return "", err
		}
		contents = append(contents, reader.Extract(ctx, p))
	}
	return document.Join(contents), nil
}

func init() {
	extractCmd.Flags().StringSliceP("types", "t", nil, "Entity types to keep (default: all)")
	extractCmd.Flags().Bool("no-events", false, "Skip event extraction")
	extractCmd.Flags().Bool("json", false, "Emit the raw JSON result")
	rootCmd.AddCommand(extractCmd)
}
