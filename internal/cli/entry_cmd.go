package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tentwenty/ticktock/internal/cli/formatter"
	"github.com/tentwenty/ticktock/internal/domain"
	"github.com/tentwenty/ticktock/internal/service"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage time entries within a week",
	}

	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryUpdateCmd(app),
		newEntryRemoveCmd(app),
	)

	return cmd
}

func newEntryAddCmd(app *App) *cobra.Command {
	var timesheetID int64
	var date, project, typeOfWork, description string
	hours := float64(domain.DefaultEntryHours)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry to a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			editor, err := resolveEditor(ctx, app, timesheetID)
			if err != nil {
				return err
			}

			if date == "" {
				date = editor.Sheet().WeekStarting
			}
			if hours < domain.MinEntryHours || hours > domain.MaxEntryHours {
				return fmt.Errorf("hours must be between 0 and 24")
			}

			entry, err := editor.AddEntry(date, service.EntryFields{
				Description: description,
				Project:     project,
				TypeOfWork:  typeOfWork,
				Hours:       hours,
			})
			if err != nil {
				return err
			}
			if err := editor.Persist(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s on %s (%s), week total %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(entry.Description),
				domain.FormatEntryDate(entry.Date),
				formatter.FormatHours(entry.Hours),
				formatter.FormatHours(editor.Sheet().TotalHours))
			return nil
		},
	}

	cmd.Flags().Int64Var(&timesheetID, "timesheet", 0, "Timesheet id (defaults to your first timesheet)")
	cmd.Flags().StringVar(&date, "date", "", "Entry date (YYYY-MM-DD, defaults to the week start)")
	cmd.Flags().StringVar(&project, "project", "", "Project name")
	cmd.Flags().StringVar(&typeOfWork, "type", "", "Type of work")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().Float64Var(&hours, "hours", domain.DefaultEntryHours, "Hours worked (0-24)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newEntryUpdateCmd(app *App) *cobra.Command {
	var timesheetID int64
	var project, typeOfWork, description string
	var hours float64

	cmd := &cobra.Command{
		Use:   "update ENTRY-ID",
		Short: "Update an entry's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			editor, err := resolveEditor(ctx, app, timesheetID)
			if err != nil {
				return err
			}

			current := editor.Sheet().FindEntry(args[0])
			if current == nil {
				return fmt.Errorf("entry not found: %q", args[0])
			}

			fields := service.EntryFields{
				Description: current.Description,
				Project:     current.Project,
				TypeOfWork:  current.TypeOfWork,
				Hours:       current.Hours,
			}
			if cmd.Flags().Changed("project") {
				fields.Project = project
			}
			if cmd.Flags().Changed("type") {
				fields.TypeOfWork = typeOfWork
			}
			if cmd.Flags().Changed("description") {
				fields.Description = description
			}
			if cmd.Flags().Changed("hours") {
				if hours < domain.MinEntryHours || hours > domain.MaxEntryHours {
					return fmt.Errorf("hours must be between 0 and 24")
				}
				fields.Hours = hours
			}

			if _, err := editor.UpdateEntry(args[0], fields); err != nil {
				return err
			}
			if err := editor.Persist(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated %s, week total %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(fields.Description),
				formatter.FormatHours(editor.Sheet().TotalHours))
			return nil
		},
	}

	cmd.Flags().Int64Var(&timesheetID, "timesheet", 0, "Timesheet id (defaults to your first timesheet)")
	cmd.Flags().StringVar(&project, "project", "", "Project name")
	cmd.Flags().StringVar(&typeOfWork, "type", "", "Type of work")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().Float64Var(&hours, "hours", domain.DefaultEntryHours, "Hours worked (0-24)")

	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	var timesheetID int64

	cmd := &cobra.Command{
		Use:   "remove ENTRY-ID",
		Short: "Remove an entry from a week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			editor, err := resolveEditor(ctx, app, timesheetID)
			if err != nil {
				return err
			}

			if !editor.DeleteEntry(args[0]) {
				return fmt.Errorf("entry not found: %q", args[0])
			}
			if err := editor.Persist(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed entry, week total %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.FormatHours(editor.Sheet().TotalHours))
			return nil
		},
	}

	cmd.Flags().Int64Var(&timesheetID, "timesheet", 0, "Timesheet id (defaults to your first timesheet)")

	return cmd
}
