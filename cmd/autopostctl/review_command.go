package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maheshrc27/autopost/internal/api"
	"github.com/maheshrc27/autopost/internal/review"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var latest bool

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Run the automated site review",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(cmd.Context(), func(s api.Services) error {
				var (
					report *review.Report
					err    error
				)
				if latest {
					report, err = s.Reviews.Latest(cmd.Context())
				} else {
					report, err = s.Reviews.Run(cmd.Context(), nil)
				}
				if err != nil {
					return err
				}
				printReport(cmd, report)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&latest, "latest", false, "Show the last stored report instead of running a new review")

	return cmd
}

func printReport(cmd *cobra.Command, r *review.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  score %d/100\n", r.TargetURL, r.Summary.Score)

	checks := []struct {
		name   string
		result review.CheckResult
	}{
		{"performance", r.Checks.Performance},
		{"seo", r.Checks.SEO},
		{"accessibility", r.Checks.Accessibility},
		{"security", r.Checks.Security},
		{"code quality", r.Checks.CodeQuality},
		{"responsiveness", r.Checks.Responsiveness},
	}
	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		rows = append(rows, []string{c.name, c.result.Status, strconv.Itoa(len(c.result.Issues)), strings.Join(c.result.Issues, "; ")})
	}
	fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Issues", "Details"}, rows, 3))

	for _, rec := range r.Recommendations {
		fmt.Fprintf(out, "- %s\n", rec)
	}
}
