package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"greenleaf/internal/app"
	"greenleaf/internal/rescore"
	"greenleaf/internal/usecase"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errAborted = errors.New("aborted")

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Recompute the stored green scores of a company's active jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		raw, _ := cmd.Flags().GetString("company")
		yes, _ := cmd.Flags().GetBool("yes")

		key, err := usecase.ParseCompanyKey(raw)
		if err != nil {
			return fmt.Errorf("--company must be a company name, name:<name> or id:<uuid>")
		}

		return withContainer(cmd.Context(), func(ctx context.Context, c *app.Container) error {
			co, err := c.Companies.Get(ctx, key)
			if err != nil {
				return fmt.Errorf("company %s: %w", key, err)
			}
			if !yes {
				if err := confirm(fmt.Sprintf("Rescore active jobs of %q", co.Name)); err != nil {
					return err
				}
			}

			rep, err := c.Rescore.RescoreCompany(ctx, usecase.CompanyKey{ID: co.ID})
			if err != nil {
				return err
			}
			c.Logger.Info("rescore finished",
				zap.String("company", rep.Company),
				zap.Int("updated", rep.Updated),
				zap.Int("failed", len(rep.Failures)),
			)
			printReport(cmd.OutOrStdout(), rep)
			if len(rep.Failures) > 0 {
				return fmt.Errorf("%d jobs could not be rescored", len(rep.Failures))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(rescoreCmd)

	rescoreCmd.Flags().StringP("company", "c", "", "company name, name:<name> or id:<uuid>")
	rescoreCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	_ = rescoreCmd.MarkFlagRequired("company")
}

func confirm(label string) error {
	p := promptui.Prompt{Label: label, IsConfirm: true}
	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return errAborted
		}
		return err
	}
	return nil
}

func printReport(w io.Writer, rep rescore.Report) {
	fmt.Fprintf(w, "company:  %s\n", rep.Company)
	fmt.Fprintf(w, "jobs:     %d\n", rep.Total)
	fmt.Fprintf(w, "updated:  %d\n", rep.Updated)
	fmt.Fprintf(w, "changed:  %d\n", rep.Changed)
	fmt.Fprintf(w, "failed:   %d\n", len(rep.Failures))
	for _, f := range rep.Failures {
		fmt.Fprintf(w, "  %s: %v\n", f.JobID, f.Err)
	}
}
