package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lightfix/lightfix/internal/adapters/outbound/config"
	"github.com/lightfix/lightfix/internal/domain"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .lightfix.yaml configuration file",
		Long:  "Create a .lightfix.yaml with the default report and output locations.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName())

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName())
				}
			}

			if err := os.WriteFile(dest, []byte(generateConfig()), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .lightfix.yaml")

	return cmd
}

func generateConfig() string {
	cfg := domain.DefaultConfig()
	return fmt.Sprintf(`# lightfix configuration

# Where the external Lighthouse runner writes its JSON reports.
reports_dir: %s

# Where generated fix plans are saved.
output_dir: %s

# Score threshold below which an audit counts as failed.
min_score: %.1f

# Audit IDs to exclude from the fix pass.
# skip_audits:
#   - document-title
`, cfg.ReportsDir, cfg.OutputDir, cfg.MinScore)
}
