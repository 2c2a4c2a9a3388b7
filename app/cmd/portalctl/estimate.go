package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/pkg/claimprogress"
)

type estimateOptions struct {
	claimType string
	status    string
	filed     string
	resolved  string
	today     string
}

func newEstimateCommand(root *rootOptions) *cobra.Command {
	opts := &estimateOptions{}

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Show the progress view of a claim with the given type and status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, today, err := opts.claim(time.Now())
			if err != nil {
				return err
			}

			progress := claimprogress.Track(c, today)
			return root.render(cmd.OutOrStdout(), progress, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				for i, s := range progress.Steps {
					fmt.Fprintf(tw, "%d.\t%s\t%s\n", i+1, s.Label, s.State)
				}
				fmt.Fprintf(tw, "\nprogress\t%.0f%%\n", progress.Percentage)
				fmt.Fprintf(tw, "estimate\t%s\n", progress.Estimate.Message)
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&opts.claimType, "type", string(claim.Medical), "claim type")
	cmd.Flags().StringVar(&opts.status, "status", string(claim.Pending), "claim status")
	cmd.Flags().StringVar(&opts.filed, "filed", "", "filed date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&opts.resolved, "resolved", "", "approval or rejection date (YYYY-MM-DD) of a settled claim")
	cmd.Flags().StringVar(&opts.today, "today", "", "evaluate as of this date (YYYY-MM-DD)")
	return cmd
}

func (o *estimateOptions) claim(now time.Time) (claimprogress.Claim, time.Time, error) {
	today := now.UTC()
	if o.today != "" {
		t, err := time.Parse(dateLayout, o.today)
		if err != nil {
			return claimprogress.Claim{}, time.Time{}, fmt.Errorf("--today: %w", err)
		}
		today = t
	}

	status := claim.Status(o.status)
	switch status {
	case claim.Pending, claim.Processing, claim.Approved, claim.Rejected:
	default:
		return claimprogress.Claim{}, time.Time{}, fmt.Errorf("unknown status %q", o.status)
	}

	c := claimprogress.Claim{
		Type:      claim.Type(o.claimType),
		Status:    status,
		FiledDate: today,
	}
	if o.filed != "" {
		filed, err := time.Parse(dateLayout, o.filed)
		if err != nil {
			return claimprogress.Claim{}, time.Time{}, fmt.Errorf("--filed: %w", err)
		}
		c.FiledDate = filed
	}

	if o.resolved != "" {
		resolved, err := time.Parse(dateLayout, o.resolved)
		if err != nil {
			return claimprogress.Claim{}, time.Time{}, fmt.Errorf("--resolved: %w", err)
		}
		switch status {
		case claim.Approved:
			c.ApprovedDate = &resolved
		case claim.Rejected:
			c.RejectedDate = &resolved
		}
	}
	return c, today, nil
}
