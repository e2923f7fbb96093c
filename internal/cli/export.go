package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"greenleaf/internal/app"
	"greenleaf/internal/export"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write jobs and their green scores to an Excel workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, _ := cmd.Flags().GetString("out")
		company, _ := cmd.Flags().GetString("company")
		company = strings.TrimSpace(company)

		return withContainer(cmd.Context(), func(ctx context.Context, c *app.Container) error {
			jobs, err := c.Jobs.Export(ctx, company)
			if err != nil {
				return err
			}
			path, err := export.JobsFile(out, jobs, company, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d jobs to %s\n", len(jobs), path)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("out", "o", "jobs.xlsx", "output workbook path")
	exportCmd.Flags().String("company", "", "limit the export to one company")
}
