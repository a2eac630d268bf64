package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"tasktracker/internal/app"
	"tasktracker/internal/service"

	"github.com/spf13/cobra"
)

func insightsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Print the productivity report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				v, err := a.Services.Views.Insights(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(v)
				}
				printInsights(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printInsights(w io.Writer, v *service.InsightsView) {
	if len(v.Unavailable) > 0 {
		fmt.Fprintf(w, "warning: could not load %s\n\n", strings.Join(v.Unavailable, ", "))
	}
	fmt.Fprintf(w, "Tasks:      %d total, %d completed (%d%%)\n", v.TotalTasks, v.CompletedTasks, v.CompletionRate)
	fmt.Fprintf(w, "Streak:     %d days\n", v.Streak)
	fmt.Fprintf(w, "This week:  %d completed, %.1f per day\n", v.Weekly.Total, v.Weekly.Average)
	for _, d := range v.Weekly.Days {
		fmt.Fprintf(w, "  %s %s\n", d.Day, strings.Repeat("#", d.Completed))
	}

	fmt.Fprintln(w, "\nBy priority:")
	for _, p := range v.Priority {
		fmt.Fprintf(w, "  %-7s %d (%d%%)\n", p.Priority, p.Count, p.Percentage)
	}
	if len(v.Projects) > 0 {
		fmt.Fprintln(w, "\nBy project:")
		for _, p := range v.Projects {
			fmt.Fprintf(w, "  %-20s %d/%d (%d%%)\n", p.Name, p.CompletedCount, p.TaskCount, p.CompletionRate)
		}
	}
	if len(v.Insights) > 0 {
		fmt.Fprintln(w)
		for _, in := range v.Insights {
			fmt.Fprintf(w, "%s %s: %s\n", in.Icon, in.Title, in.Description)
		}
	}
}
