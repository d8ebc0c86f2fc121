package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"poddash/client"
	"poddash/config"
	"poddash/tui"
)

func newRootCommand() *cobra.Command {
	var urlFlag string

	rootCmd := &cobra.Command{
		Use:           "poddash",
		Short:         "Terminal dashboard for the podcast summarization pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(urlFlag)
		},
	}

	rootCmd.PersistentFlags().StringVar(&urlFlag, "url", "", "Backend base URL (default: POD_API_URL or http://localhost:5002)")

	rootCmd.AddCommand(newEpisodesCommand(&urlFlag))
	rootCmd.AddCommand(newFeedsCommand(&urlFlag))
	rootCmd.AddCommand(newFeederCommand(&urlFlag))
	rootCmd.AddCommand(newDemoCommand())

	return rootCmd
}

func runDashboard(urlOverride string) error {
	cfg := config.Load()
	if urlOverride != "" {
		cfg.APIBaseURL = urlOverride
	}

	program := tea.NewProgram(tui.New(cfg), tea.WithAltScreen())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// newAPIClient builds a client from the flag override or the environment.
func newAPIClient(urlFlag *string) *client.Client {
	if urlFlag != nil && *urlFlag != "" {
		return client.New(*urlFlag)
	}
	return client.New(client.ResolveBaseURL())
}
