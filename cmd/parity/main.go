// Package main provides the Criterion verification CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/criterion-ml/criterion/verify"
)

const version = "v0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "parity",
		Short:         "Run numeric verification scenarios for the Criterion losses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newListCmd(), newVersionCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		seed   uint64
		filter string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the scenario suite and report per-scenario outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios := filterScenarios(verify.Suite(), filter)
			if len(scenarios) == 0 {
				return fmt.Errorf("no scenario matches %q", filter)
			}

			runner := &verify.Runner{Seed: seed, Scenarios: scenarios}
			results := runner.Run()

			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range results {
				fmt.Fprintln(out, res)
				if !res.Passed() {
					failed++
				}
			}
			fmt.Fprintf(out, "\n%d scenarios, %d failed (seed %d)\n", len(results), failed, seed)
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 42, "runner seed for randomized scenarios")
	cmd.Flags().StringVar(&filter, "filter", "", "only run scenarios whose name contains this substring")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range verify.Suite() {
				fmt.Fprintln(cmd.OutOrStdout(), s.Name)
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Criterion %s\n", version)
		},
	}
}

func filterScenarios(scenarios []verify.Scenario, filter string) []verify.Scenario {
	if filter == "" {
		return scenarios
	}
	kept := scenarios[:0]
	for _, s := range scenarios {
		if strings.Contains(s.Name, filter) {
			kept = append(kept, s)
		}
	}
	return kept
}
