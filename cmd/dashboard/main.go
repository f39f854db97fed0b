package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskmaster/dashboard/cmd/dashboard/commands"
)

// @title Dashboard API
// @version 1.0
// @description Personal dashboard state: theme, widgets, tasks, weather, news and stocks

// @host localhost:8080
// @BasePath /api/v1

func main() {
	rootCmd := &cobra.Command{
		Use:          "dashboard",
		Short:        "Personal dashboard server and CLI",
		Long:         `Dashboard keeps theme, widget layout, tasks, watchlist and profile in durable local storage and serves them over HTTP.`,
		SilenceUsage: true,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewStateCommand())
	rootCmd.AddCommand(commands.NewTaskCommand())
	rootCmd.AddCommand(commands.NewWatchlistCommand())
	rootCmd.AddCommand(commands.NewThemeCommand())
	rootCmd.AddCommand(commands.NewSettingsCommand())
	rootCmd.AddCommand(commands.NewCalendarCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
