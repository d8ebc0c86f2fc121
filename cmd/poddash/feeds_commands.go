package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"poddash/client"
	"poddash/types"
)

func newFeedsCommand(urlFlag *string) *cobra.Command {
	feedsCmd := &cobra.Command{
		Use:   "feeds",
		Short: "Inspect and manage RSS subscriptions",
	}

	feedsCmd.AddCommand(newFeedsListCommand(urlFlag))
	feedsCmd.AddCommand(newFeedsAddCommand(urlFlag))
	feedsCmd.AddCommand(newFeedsRemoveCommand(urlFlag))

	return feedsCmd
}

func newFeedsListCommand(urlFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := newAPIClient(urlFlag).ListFeeds(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(list.Feeds))
			for _, feed := range list.Feeds {
				category := string(feed.Category)
				if feed.Category == "" || feed.Category == types.CategoryNone {
					category = "default"
				}
				rows = append(rows, table.Row{
					feed.ID, feed.Title, feed.URL, category,
					strconv.Itoa(feed.EpisodeCount), string(feed.Status),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				table.Row{"ID", "Title", "URL", "Category", "Episodes", "Status"},
				rows, 5))
			return nil
		},
	}
}

func newFeedsAddCommand(urlFlag *string) *cobra.Command {
	var titleFlag string
	var categoryFlag string
	var promptFlag string

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Subscribe to a feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := types.CategoryNone
			if categoryFlag != "" {
				parsed, ok := types.ParseCategory(categoryFlag)
				if !ok {
					return fmt.Errorf("unknown category %q", categoryFlag)
				}
				category = parsed
			}

			c := newAPIClient(urlFlag)
			req := client.NewFeedRequest(args[0], titleFlag, category, promptFlag)
			if err := c.AddFeed(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Feed added")
			return nil
		},
	}

	cmd.Flags().StringVar(&titleFlag, "title", "", "Display title (default: the feed's own title)")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "Prompt category for new episodes")
	cmd.Flags().StringVar(&promptFlag, "prompt", "", "Custom prompt instructions")

	return cmd
}

func newFeedsRemoveCommand(urlFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Unsubscribe from a feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient(urlFlag).DeleteFeed(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Feed removed")
			return nil
		},
	}
}

func newFeederCommand(urlFlag *string) *cobra.Command {
	feederCmd := &cobra.Command{
		Use:   "feeder",
		Short: "Inspect the feed polling daemon",
	}

	feederCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the poller's last and next run",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := newAPIClient(urlFlag).FeederStatus(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			running := "stopped"
			if status.IsRunning {
				running = "running"
			}
			fmt.Fprintf(out, "Feeder:   %s\n", running)
			fmt.Fprintf(out, "Last run: %s (%s)\n", status.LastRunTimeReadable, status.LastRunStatus)
			fmt.Fprintf(out, "Next run: in %d minutes\n", status.NextRunInMinutes)
			return nil
		},
	})

	feederCmd.AddCommand(&cobra.Command{
		Use:   "restart",
		Short: "Restart the poller",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient(urlFlag).RestartFeeder(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Feeder restart requested")
			return nil
		},
	})

	return feederCmd
}
