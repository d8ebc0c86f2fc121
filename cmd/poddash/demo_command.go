package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"poddash/demoserver"
)

func newDemoCommand() *cobra.Command {
	var addrFlag string
	var seedFeedFlag string
	var mediaDirFlag string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run an in-memory backend with simulated episode processing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := demoserver.New(demoserver.Options{
				Addr:        addrFlag,
				SeedFeedURL: seedFeedFlag,
				MediaDir:    mediaDirFlag,
			})
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addrFlag, "addr", ":5002", "Listen address")
	cmd.Flags().StringVar(&seedFeedFlag, "seed-feed", "", "RSS feed URL to fabricate episodes from")
	cmd.Flags().StringVar(&mediaDirFlag, "media-dir", "", "Directory served under /data for audio assets")

	return cmd
}
