package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mealboard/internal/parser"
)

// Offline companion tool for tuning rule tables: run the rule engine
// over a text dump and inspect the JSON it would store.
func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mealboard",
		Short:        "mealboard — cafeteria menu tooling",
		SilenceUsage: true,
	}
	cmd.AddCommand(parseCmd())
	return cmd
}

func parseCmd() *cobra.Command {
	var rulesFile string
	var pretty bool

	c := &cobra.Command{
		Use:   "parse <file>",
		Short: "Run the rule engine over a menu text file and print the weekly menu JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			engine := parser.Default()
			if rulesFile != "" {
				rules, err := parser.LoadRules(rulesFile)
				if err != nil {
					return fmt.Errorf("rules file %s: %w", rulesFile, err)
				}
				engine = parser.NewEngine(rules)
			}

			report := engine.ParseWithReport(string(data))
			for _, skipped := range report.Skipped {
				fmt.Fprintf(os.Stderr, "skipped %s: no sessions from %q\n", skipped.DayName, skipped.HeaderLine)
			}
			if len(report.Menu.Days) == 0 {
				return fmt.Errorf("no day schedules recognized in %s", args[0])
			}

			enc := json.NewEncoder(os.Stdout)
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(report.Menu)
		},
	}

	c.Flags().StringVarP(&rulesFile, "rules", "r", "", "YAML rule tables (defaults to the built-in tables)")
	c.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return c
}
