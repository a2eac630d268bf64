package main

import (
	"errors"
	"fmt"

	"tasktracker/internal/config"
	"tasktracker/internal/events"

	"github.com/spf13/cobra"
)

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect published change events",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tail",
		Short: "Print change events as they are published",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read()
			if err != nil {
				return err
			}
			if cfg.NATSURL == "" {
				return errors.New("NATS_URL is not set")
			}
			p, err := events.Connect(cfg.NATSURL, "trackerctl")
			if err != nil {
				return err
			}
			defer p.Close()

			out := cmd.OutOrStdout()
			return p.Subscribe(cmd.Context(), func(subject string, msg events.Message) {
				fmt.Fprintf(out, "%s %s #%d %s\n", msg.At.Format("15:04:05"), subject, msg.ID, msg.Data)
			})
		},
	})
	return cmd
}
