package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"poddash/audio"
	"poddash/client"
	"poddash/types"
)

func newEpisodesCommand(urlFlag *string) *cobra.Command {
	episodesCmd := &cobra.Command{
		Use:   "episodes",
		Short: "Inspect and manage episodes",
	}

	episodesCmd.AddCommand(newEpisodesListCommand(urlFlag))
	episodesCmd.AddCommand(newEpisodesShowCommand(urlFlag))
	episodesCmd.AddCommand(newEpisodesSubmitCommand(urlFlag))

	return episodesCmd
}

func newEpisodesListCommand(urlFlag *string) *cobra.Command {
	var statusFlag string
	var categoryFlag string
	var hiddenFlag bool
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := client.ListOptions{Hidden: hiddenFlag, Limit: limitFlag}
			if statusFlag != "" {
				status, ok := types.ParseStatus(statusFlag)
				if !ok {
					return fmt.Errorf("unknown status %q", statusFlag)
				}
				opts.Status = status
			}
			if categoryFlag != "" {
				category, ok := types.ParseCategory(categoryFlag)
				if !ok {
					return fmt.Errorf("unknown category %q", categoryFlag)
				}
				opts.Category = category
			}

			list, err := newAPIClient(urlFlag).ListEpisodes(cmd.Context(), opts)
			if err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(list.Episodes))
			now := time.Now()
			for _, ep := range list.Episodes {
				duration := ""
				if ep.Duration.Seconds > 0 {
					duration = audio.FormatDuration(ep.Duration.Seconds)
				}
				rows = append(rows, table.Row{
					ep.ID, ep.Title, ep.FeedLabel(), ep.Status.Label(),
					duration, ep.DisplayDate().RelativeDate(now),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				table.Row{"ID", "Title", "Feed", "Status", "Duration", "Date"},
				rows, 5))
			fmt.Fprintf(cmd.OutOrStdout(), "%d total, %d completed, %d processing\n",
				list.Total, list.CompletedCount, list.ProcessingCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status (pending, processing, completed, failed)")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "Filter by prompt category")
	cmd.Flags().BoolVar(&hiddenFlag, "hidden", false, "List hidden episodes instead of visible ones")
	cmd.Flags().IntVar(&limitFlag, "limit", 20, "Page size")

	return cmd
}

func newEpisodesShowCommand(urlFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one episode, including its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := newAPIClient(urlFlag).GetEpisode(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", ep.Title)
			fmt.Fprintf(out, "Feed:     %s\n", ep.FeedLabel())
			fmt.Fprintf(out, "Status:   %s\n", ep.Status.Label())
			if ep.Duration.Seconds > 0 {
				fmt.Fprintf(out, "Duration: %s\n", audio.FormatDuration(ep.Duration.Seconds))
			}
			if reason := ep.FailureReason(); reason != "" {
				fmt.Fprintf(out, "Error:    %s\n", reason)
			}
			if ep.HasSummary() {
				fmt.Fprintf(out, "\n%s\n", ep.Summary)
			}
			return nil
		},
	}
}

func newEpisodesSubmitCommand(urlFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <url>",
		Short: "Submit an episode URL for processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient(urlFlag).SubmitEpisode(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Episode submitted for processing")
			return nil
		},
	}
}
