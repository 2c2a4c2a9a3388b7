package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/pkg/claimprogress"
)

type timelineView struct {
	Type        claim.Type           `json:"type" yaml:"type"`
	TypicalDays int                  `json:"typical_days" yaml:"typical_days"`
	Steps       []claimprogress.Step `json:"steps" yaml:"steps"`
}

func newTimelineCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline [type]",
		Short: "Print the processing timeline of one or every claim type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			types := claimprogress.TimelineTypes()
			if len(args) == 1 {
				types = []claim.Type{claim.Type(args[0])}
			}

			views := make([]timelineView, 0, len(types))
			for _, t := range types {
				views = append(views, timelineView{
					Type:        t,
					TypicalDays: claimprogress.TypicalDays(t),
					Steps:       claimprogress.Timeline(t),
				})
			}

			return opts.render(cmd.OutOrStdout(), views, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				for _, v := range views {
					fmt.Fprintf(tw, "%s\t(%d days)\n", v.Type, v.TypicalDays)
					for i, s := range v.Steps {
						fmt.Fprintf(tw, "  %d.\t%s\t%s\n", i+1, s.Label, s.Description)
					}
				}
				return tw.Flush()
			})
		},
	}
}
