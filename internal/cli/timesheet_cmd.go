package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tentwenty/ticktock/internal/cli/formatter"
	"github.com/tentwenty/ticktock/internal/domain"
	"github.com/tentwenty/ticktock/internal/service"
)

func newTimesheetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Manage timesheets",
	}

	cmd.AddCommand(
		newTimesheetCreateCmd(app),
		newTimesheetDeleteCmd(app),
	)

	return cmd
}

func newTimesheetCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a timesheet for the current week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user := app.Auth.CurrentUser()
			if user == nil {
				return fmt.Errorf("not logged in; run `ticktock login` first")
			}

			editor := service.NewEditor(app.Timesheets)
			if err := editor.Resolve(ctx, service.ResolveRequest{
				Seed: domain.NewDraft(user.ID, timeNow()),
			}); err != nil {
				return err
			}
			if err := editor.Create(ctx); err != nil {
				return err
			}

			sheet := editor.Sheet()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created timesheet %d for %s\n",
				formatter.StyleGreen.Render("✔"),
				sheet.ID,
				domain.FormatDateRange(sheet.WeekStarting, sheet.WeekEnding))
			return nil
		},
	}
}

func newTimesheetDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a timesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid timesheet id %q", args[0])
			}
			if err := app.Timesheets.Delete(context.Background(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted timesheet %d\n", id)
			return nil
		},
	}
}
