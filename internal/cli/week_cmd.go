package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tentwenty/ticktock/internal/cli/formatter"
	"github.com/tentwenty/ticktock/internal/service"
)

// resolveEditor loads the editor for either an explicit timesheet id or the
// logged-in user's first timesheet.
func resolveEditor(ctx context.Context, app *App, timesheetID int64) (*service.Editor, error) {
	req := service.ResolveRequest{TimesheetID: timesheetID}
	if timesheetID == 0 {
		user := app.Auth.CurrentUser()
		if user == nil {
			return nil, fmt.Errorf("not logged in; run `ticktock login` first")
		}
		req.UserID = user.ID
	}

	editor := service.NewEditor(app.Timesheets)
	if err := editor.Resolve(ctx, req); err != nil {
		return nil, err
	}
	return editor, nil
}

func newWeekCmd(app *App) *cobra.Command {
	var timesheetID int64

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show a week's entries grouped by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := formatter.StartSpinner("Loading week...")
			editor, err := resolveEditor(context.Background(), app, timesheetID)
			stop()
			if err != nil {
				return err
			}

			sheet := editor.Sheet()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeek(sheet))
			if sheet.IsDraft() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Draft week, not yet on the server. Use `ticktock timesheet create` to persist it."))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&timesheetID, "timesheet", 0, "Timesheet id (defaults to your first timesheet)")

	return cmd
}
