package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/taskmaster/dashboard/internal/adapters/storage"
	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/application/store"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// session is one CLI invocation's view of the persisted dashboard.
type session struct {
	backend   ports.Storage
	store     *store.Store
	tasks     *services.TaskService
	dashboard *services.DashboardService
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Commands print their own output; storage warnings would interleave with it.
	log := logger.NewNop()

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}

	st := store.New(backend, store.WithLogger(log), store.WithWriteTimeout(cfg.Storage.WriteTimeout))
	return &session{
		backend:   backend,
		store:     st,
		tasks:     services.NewTaskService(st, log),
		dashboard: services.NewDashboardService(st, log),
	}, nil
}

func (s *session) Close() error {
	return s.backend.Close()
}

func (s *session) palette() palette {
	return newPalette(s.store.DarkMode())
}

// withSession opens the store around fn.
func withSession(fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(cmd, args, s)
	}
}

// NewStateCommand prints the whole store as JSON
func NewStateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the dashboard state as JSON",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			data, err := json.MarshalIndent(s.store.State(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}),
	}
}

// NewTaskCommand creates the task command with subcommands
func NewTaskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Task management commands",
	}

	addCmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			priority, _ := cmd.Flags().GetString("priority")
			category, _ := cmd.Flags().GetString("category")
			due, _ := cmd.Flags().GetString("due")
			description, _ := cmd.Flags().GetString("description")

			task, err := s.tasks.CreateTask(ports.CreateTaskRequest{
				Title:       strings.Join(args, " "),
				Description: description,
				Priority:    entities.Priority(priority),
				Category:    category,
				DueDate:     due,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", task.ID)
			return nil
		}),
	}
	addCmd.Flags().StringP("priority", "p", "medium", "Priority (low, medium, high)")
	addCmd.Flags().StringP("category", "c", "general", "Category")
	addCmd.Flags().StringP("due", "d", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().String("description", "", "Longer description")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, incomplete first",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			var filter ports.TaskFilter
			filter.Status, _ = cmd.Flags().GetString("status")
			filter.Priority, _ = cmd.Flags().GetString("priority")
			filter.Category, _ = cmd.Flags().GetString("category")
			filter.Due, _ = cmd.Flags().GetString("due")
			filter.Search, _ = cmd.Flags().GetString("search")

			if err := validator.New().Struct(filter); err != nil {
				return err
			}

			renderTasks(cmd.OutOrStdout(), s.palette(), s.tasks.ListTasks(filter), time.Now())
			return nil
		}),
	}
	listCmd.Flags().String("status", "all", "all, pending or completed")
	listCmd.Flags().String("priority", "", "Only this priority")
	listCmd.Flags().String("category", "", "Only this category")
	listCmd.Flags().String("due", "all", "all, today, week or overdue")
	listCmd.Flags().StringP("search", "q", "", "Search title and description")

	doneCmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			undo, _ := cmd.Flags().GetBool("undo")
			completed := !undo
			task, err := s.tasks.UpdateTask(args[0], ports.TaskPatch{Completed: &completed})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: completed=%t\n", task.Title, task.Completed)
			return nil
		}),
	}
	doneCmd.Flags().Bool("undo", false, "Mark the task pending again")

	rmCmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			if err := s.tasks.DeleteTask(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		}),
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize tasks",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			renderStats(cmd.OutOrStdout(), s.palette(), s.tasks.Stats())
			return nil
		}),
	}

	taskCmd.AddCommand(addCmd, listCmd, doneCmd, rmCmd, statsCmd)
	return taskCmd
}

// NewWatchlistCommand creates the watchlist command with subcommands
func NewWatchlistCommand() *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Stock watchlist commands",
	}

	watchCmd.AddCommand(&cobra.Command{
		Use:   "add SYMBOL",
		Short: "Track a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			symbol, added, err := s.dashboard.AddToWatchlist(ports.WatchlistRequest{Symbol: args[0]})
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", symbol)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already on the watchlist\n", symbol)
			}
			return nil
		}),
	})

	watchCmd.AddCommand(&cobra.Command{
		Use:   "rm SYMBOL",
		Short: "Stop tracking a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			if err := s.dashboard.RemoveFromWatchlist(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", strings.ToUpper(args[0]))
			return nil
		}),
	})

	watchCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show tracked tickers",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			renderWatchlist(cmd.OutOrStdout(), s.palette(), s.store.Watchlist(), s.store.StockData())
			return nil
		}),
	})

	return watchCmd
}

// NewThemeCommand creates the theme command
func NewThemeCommand() *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Theme commands",
	}

	themeCmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Flip dark mode",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			dark := s.dashboard.ToggleTheme()
			fmt.Fprintf(cmd.OutOrStdout(), "Dark mode %s\n", onOff(dark))
			return nil
		}),
	})

	return themeCmd
}

// NewSettingsCommand creates the settings command
func NewSettingsCommand() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "User profile commands",
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			printSettings(cmd, s.dashboard.Settings())
			return nil
		}),
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change profile fields; unset flags are left alone",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			var patch ports.SettingsPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				v, _ := flags.GetString("name")
				patch.Name = &v
			}
			if flags.Changed("email") {
				v, _ := flags.GetString("email")
				patch.Email = &v
			}
			if flags.Changed("location") {
				v, _ := flags.GetString("location")
				patch.Location = &v
			}
			if flags.Changed("notifications") {
				v, _ := flags.GetBool("notifications")
				patch.Notifications = &v
			}

			if err := validator.New().Struct(patch); err != nil {
				return err
			}

			printSettings(cmd, s.dashboard.UpdateSettings(patch))
			return nil
		}),
	}
	setCmd.Flags().String("name", "", "Display name")
	setCmd.Flags().String("email", "", "Email address")
	setCmd.Flags().String("location", "", "Weather location")
	setCmd.Flags().Bool("notifications", true, "Enable notifications")

	settingsCmd.AddCommand(setCmd)
	return settingsCmd
}

func printSettings(cmd *cobra.Command, u entities.UserSettings) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "name:          %s\n", u.Name)
	fmt.Fprintf(out, "email:         %s\n", u.Email)
	fmt.Fprintf(out, "location:      %s\n", u.Location)
	fmt.Fprintf(out, "notifications: %s\n", onOff(u.Notifications))
}

// NewCalendarCommand prints a month grid with due tasks
func NewCalendarCommand() *cobra.Command {
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month with task due dates",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")
			if month < 0 || month > 12 {
				return fmt.Errorf("invalid month %d", month)
			}

			m, err := s.tasks.Calendar(year, time.Month(month))
			if err != nil {
				return err
			}
			renderCalendar(cmd.OutOrStdout(), s.palette(), m)
			return nil
		}),
	}
	calendarCmd.Flags().Int("year", 0, "Year (default current)")
	calendarCmd.Flags().Int("month", 0, "Month 1-12 (default current)")

	return calendarCmd
}
