package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tentwenty/ticktock/internal/cli/formatter"
	"github.com/tentwenty/ticktock/internal/service"
)

func newListCmd(app *App) *cobra.Command {
	status := newStatusFlag()
	var dateRange string
	var page, perPage int
	var mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List timesheets with filters and pagination",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var userID int64
			if mine {
				user := app.Auth.CurrentUser()
				if user == nil {
					return fmt.Errorf("not logged in; run `ticktock login` first")
				}
				userID = user.ID
			}

			stop := formatter.StartSpinner("Loading timesheets...")
			sheets, err := app.Timesheets.List(ctx, userID)
			stop()
			if err != nil {
				return err
			}

			list := service.NewTimesheetList()
			list.SetItems(sheets)
			list.SetStatusFilter(status.String())
			list.SetDateRangeFilter(dateRange)
			list.SetPerPage(perPage)
			list.SetPage(page)

			filtered := list.Filtered()
			if len(filtered) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No timesheets match.")
				return nil
			}

			rows, startIndex := list.PageItems()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimesheetTable(rows, startIndex))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatListFooter(
				list.Page(), list.TotalPages(), len(rows), len(filtered)))
			return nil
		},
	}

	cmd.Flags().Var(status, "status", "Filter by derived status ("+statusChoices()+")")
	cmd.Flags().StringVar(&dateRange, "range", "", `Filter by formatted week range (e.g. "3 - 9 June, 2024")`)
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", service.DefaultPageSize, "Rows per page (5, 10 or 25)")
	cmd.Flags().BoolVar(&mine, "mine", false, "Only the logged-in user's timesheets")

	return cmd
}
