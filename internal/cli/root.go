package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tentwenty/ticktock/internal/service"
)

// App holds references to the service interfaces used by CLI commands.
type App struct {
	Auth       service.AuthService
	Timesheets service.TimesheetService

	// IsInteractive reports whether stdin is a terminal. The bare
	// "ticktock" invocation only launches the TUI when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "ticktock" command and registers all
// subcommands against the provided App. Running it with no subcommand
// opens the interactive TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ticktock",
		Short: "Timesheet client for the ticktock backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return cmd.Help()
			}
			return runTUI(app)
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newListCmd(app),
		newWeekCmd(app),
		newEntryCmd(app),
		newTimesheetCmd(app),
	)

	return root
}

func runTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
