package main

import (
	"fmt"
	"text/tabwriter"

	"tasktracker/internal/app"

	"github.com/spf13/cobra"
)

func achievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List or award achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				all, err := a.Services.Achievements.ListAll(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTYPE\tMILESTONE\tEARNED\tMESSAGE")
				for _, ach := range all {
					fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", ach.ID, ach.Type, ach.Milestone,
						ach.EarnedAt.In(a.Config.Location).Format("2006-01-02 15:04"), ach.Message)
				}
				return w.Flush()
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Award milestones reached by the stored tasks",
		Long: `Recomputes the completed-task count and the current streak from the
record store and awards any milestone not yet earned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				earned, err := a.Services.Achievements.AwardForProgress(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(earned) == 0 {
					fmt.Fprintln(out, "no new achievements")
					return nil
				}
				for _, ach := range earned {
					fmt.Fprintln(out, ach.Message)
				}
				return nil
			})
		},
	})
	return cmd
}
