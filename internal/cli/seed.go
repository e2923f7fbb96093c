package cli

import (
	"context"

	"greenleaf/internal/app"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo companies and, with --jobs, scored demo jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		withJobs, _ := cmd.Flags().GetBool("jobs")
		return withContainer(cmd.Context(), func(ctx context.Context, c *app.Container) error {
			return c.Seed(ctx, withJobs)
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().Bool("jobs", false, "also seed demo jobs; each one is scored through the configured classifier")
}
