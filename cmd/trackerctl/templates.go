package main

import (
	"fmt"
	"text/tabwriter"

	"tasktracker/internal/config"
	"tasktracker/internal/templates"

	"github.com/spf13/cobra"
)

func templatesCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the task template catalog",
		Long: `Lists the catalog the server would load: --file, else TEMPLATES_FILE,
else the built-in templates. Useful for checking a custom catalog parses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				cfg, err := config.Read()
				if err != nil {
					return err
				}
				file = cfg.TemplatesFile
			}
			items, err := templates.Load(file)
			if err != nil {
				return err
			}
			list := templates.NewCatalog(items).List()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTITLE\tPRIORITY\tCATEGORY")
			for _, t := range list {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Title, t.Priority, t.Category)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Catalog YAML file")
	return cmd
}
