package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightfix/lightfix/internal/adapters/outbound/config"
	"github.com/lightfix/lightfix/internal/adapters/outbound/loader"
	"github.com/lightfix/lightfix/internal/adapters/outbound/markdown"
	"github.com/lightfix/lightfix/internal/adapters/outbound/tui"
	"github.com/lightfix/lightfix/internal/application"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		category string
		minScore float64
		format   string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [report]",
		Short: "Summarize a Lighthouse report",
		Long:  "Read a Lighthouse JSON report (the latest one by default) and summarize category scores, Core Web Vitals, opportunities, and failing audits.",
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
			if !cmd.Flags().Changed("min-score") {
				minScore = cfg.MinScore
			}

			ld := loader.New(cfg.ReportsDir)
			svc := application.NewAnalyzeService(ld, ld)

			result, err := svc.Analyze(reportArg, category, minScore)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			case "markdown":
				fmt.Fprint(cmd.OutOrStdout(), markdown.RenderAnalysis(result.Findings, verbose))
			default:
				return fmt.Errorf("unknown format %q (valid: markdown, json)", format)
			}

			if verbose {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderAnalysis(result.Findings))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Limit failed audits to one category")
	cmd.Flags().Float64Var(&minScore, "min-score", 0.5, "Score threshold below which an audit counts as failed")
	cmd.Flags().StringVar(&format, "format", "markdown", "Output format (markdown, json)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include audit descriptions and a console summary")

	return cmd
}
