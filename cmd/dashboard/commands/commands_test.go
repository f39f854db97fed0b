package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

func useTempStorage(t *testing.T) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("STORAGE_DIR", t.TempDir())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "dashboard", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(
		NewStateCommand(),
		NewTaskCommand(),
		NewWatchlistCommand(),
		NewThemeCommand(),
		NewSettingsCommand(),
		NewCalendarCommand(),
		NewVersionCommand(),
	)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestTaskCommands(t *testing.T) {
	useTempStorage(t)

	out := mustRun(t, "task", "add", "Buy", "milk", "-p", "high", "-d", "2024-01-01")
	require.True(t, strings.HasPrefix(out, "Created task "), out)
	id := strings.TrimSpace(strings.TrimPrefix(out, "Created task "))

	out = mustRun(t, "task", "list")
	assert.Contains(t, out, "[ ] Buy milk")
	assert.Contains(t, out, "high")
	assert.Contains(t, out, "(overdue)")

	out = mustRun(t, "task", "done", id)
	assert.Contains(t, out, "completed=true")

	out = mustRun(t, "task", "list", "--status", "pending")
	assert.Contains(t, out, "No tasks")

	out = mustRun(t, "task", "stats")
	assert.Contains(t, out, "completed  1 (100%)")

	mustRun(t, "task", "rm", id)
	_, err := run(t, "task", "rm", id)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	_, err = run(t, "task", "add", "x", "-p", "urgent")
	assert.ErrorIs(t, err, entities.ErrInvalidPriority)

	_, err = run(t, "task", "list", "--due", "someday")
	assert.Error(t, err)
}

func TestWatchlistCommands(t *testing.T) {
	useTempStorage(t)

	assert.Equal(t, "Watching NVDA\n", mustRun(t, "watchlist", "add", "nvda"))
	assert.Contains(t, mustRun(t, "watchlist", "add", "NVDA"), "already on the watchlist")
	mustRun(t, "watchlist", "rm", "msft")

	_, err := run(t, "watchlist", "rm", "msft")
	assert.ErrorIs(t, err, entities.ErrSymbolNotWatched)

	out := mustRun(t, "watchlist", "list")
	assert.Contains(t, out, "NVDA")
	assert.NotContains(t, out, "MSFT")
}

func TestThemeAndStatePersist(t *testing.T) {
	useTempStorage(t)

	assert.Equal(t, "Dark mode on\n", mustRun(t, "theme", "toggle"))

	var snap ports.Snapshot
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "state")), &snap))
	assert.True(t, snap.DarkMode)
	assert.Len(t, snap.Widgets, len(entities.DefaultWidgets()))
}

func TestSettingsCommands(t *testing.T) {
	useTempStorage(t)

	out := mustRun(t, "settings", "set", "--location", "Oslo", "--notifications=false")
	assert.Contains(t, out, "location:      Oslo")
	assert.Contains(t, out, "notifications: off")
	assert.Contains(t, out, "email:         john.doe@example.com")

	_, err := run(t, "settings", "set", "--email", "not-an-email")
	assert.Error(t, err)

	assert.Contains(t, mustRun(t, "settings"), "Oslo")
}

func TestCalendarCommand(t *testing.T) {
	useTempStorage(t)
	mustRun(t, "task", "add", "Leap", "-d", "2024-02-29")

	out := mustRun(t, "calendar", "--year", "2024", "--month", "2")
	assert.Contains(t, out, "February 2024")
	assert.Contains(t, out, "29*")
	assert.Contains(t, out, "2024-02-29  Leap")

	_, err := run(t, "calendar", "--month", "13")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, mustRun(t, "version"), "Dashboard dev")
}
