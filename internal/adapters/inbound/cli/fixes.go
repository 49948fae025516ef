package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lightfix/lightfix/internal/adapters/outbound/config"
	"github.com/lightfix/lightfix/internal/adapters/outbound/gitinfo"
	"github.com/lightfix/lightfix/internal/adapters/outbound/history"
	"github.com/lightfix/lightfix/internal/adapters/outbound/loader"
	"github.com/lightfix/lightfix/internal/adapters/outbound/markdown"
	"github.com/lightfix/lightfix/internal/adapters/outbound/tui"
	"github.com/lightfix/lightfix/internal/application"
)

func newFixesCmd() *cobra.Command {
	var (
		category    string
		output      string
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "fixes [report]",
		Short: "Generate prioritized fixes from a Lighthouse report",
		Long:  "Map every failing audit the rule table knows to a prioritized fix with remediation snippets, print the plan, and save it as markdown.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportArg := ""
			if len(args) > 0 {
				reportArg = args[0]
			}

			cfg, err := config.New().Load(".")
			if err != nil {
				return err
			}

			ld := loader.New(cfg.ReportsDir)
			svc := application.NewFixService(ld, ld, gitinfo.New(), history.New(), cfg)

			if showHistory {
				runs, err := svc.History(".")
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(runs))
				return nil
			}

			result, err := svc.PlanFixes(reportArg, category)
			if err != nil {
				return err
			}

			now := time.Now()
			svc.RecordRun(".", result, now) // best-effort

			// Print first; a failed save must not swallow the findings.
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixes(result.Fixes))

			if output == "" {
				output = application.DefaultOutputPath(cfg.OutputDir, now)
			}
			doc := markdown.RenderFixes(result.Summary, result.Fixes)
			if err := markdown.Save(output, doc); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved fix plan to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Generate fixes for one category only")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default .lighthouse/fixes/fixes-<date>.md)")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show prior fix runs")

	return cmd
}
