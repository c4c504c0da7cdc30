package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cobalt-ridge/gleaner/internal/engine/event"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show the active event rule table",
	Long: `Print the event rules the engine will apply: the built-in table, or the
file named by patterns.path in the config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := loadEventRules(cfg.Patterns.Path)
		source := cfg.Patterns.Path
		if rules == nil {
			rules = event.DefaultRules()
			source = "built-in"
		}

		fmt.Printf("%d event rules (%s)\n\n", len(rules), source)
		for _, r := range rules {
			fmt.Println(r.Type)
			fmt.Printf("  pattern:  %s\n", r.Pattern.String())
			if len(r.Attributes) > 0 {
				keys := make([]string, 0, len(r.Attributes))
				for k := range r.Attributes {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				fmt.Printf("  captures: %s\n", strings.Join(keys, ", "))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}
