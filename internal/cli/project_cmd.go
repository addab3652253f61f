package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/steelbuild/internal/cli/formatter"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectArchiveCmd(app),
		newProjectUnarchiveCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var number, name, client, location, status, start, target string
	var contractValue float64
	var users []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := domain.ParseDate(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			targetDate, err := parseOptionalDateFlag("target", target)
			if err != nil {
				return err
			}

			p := &domain.Project{
				ProjectNumber:    number,
				Name:             name,
				Client:           client,
				Location:         location,
				Status:           domain.ProjectStatus(status),
				StartDate:        startDate,
				TargetCompletion: targetDate,
				ContractValue:    contractValue,
				AssignedUsers:    users,
			}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}

			printf(cmd, "Created project %s [%s]\n", p.Name, p.ProjectNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "Project number (e.g. SB-1042)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&client, "client", "", "Client")
	cmd.Flags().StringVar(&location, "location", "", "Site location")
	cmd.Flags().StringVar(&status, "status", "", "Status (planning|in_progress|on_hold|completed|cancelled)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&target, "target", "", "Target completion (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&contractValue, "contract-value", 0, "Contract value in dollars")
	cmd.Flags().StringSliceVar(&users, "user", nil, "Assigned user email (repeatable)")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			var projects []*domain.Project
			var err error
			if status != "" {
				projects, err = app.Projects.ListByStatus(cmd.Context(), domain.ProjectStatus(status))
			} else {
				projects, err = app.Projects.List(cmd.Context(), all)
			}
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				writeln(cmd, "No projects found.")
				return nil
			}
			writeln(cmd, formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")
	cmd.Flags().StringVar(&status, "status", "", "Only projects with this status")

	return cmd
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PROJECT",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.List(ctx, repository.TaskFilter{ProjectID: p.ID})
			if err != nil {
				return err
			}
			items, err := app.SOV.List(ctx, p.ID)
			if err != nil {
				return err
			}

			writeln(cmd, formatter.FormatProjectInspect(formatter.ProjectInspectData{
				Project:  p,
				Tasks:    tasks,
				SOVItems: items,
			}))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var number, name, client, location, status, start, target string
	var contractValue float64
	var users []string

	cmd := &cobra.Command{
		Use:   "update PROJECT",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("number") {
				p.ProjectNumber = strings.ToUpper(number)
			}
			if flags.Changed("name") {
				p.Name = name
			}
			if flags.Changed("client") {
				p.Client = client
			}
			if flags.Changed("location") {
				p.Location = location
			}
			if flags.Changed("status") {
				p.Status = domain.ProjectStatus(status)
			}
			if flags.Changed("start") {
				if p.StartDate, err = domain.ParseDate(start); err != nil {
					return fmt.Errorf("--start: %w", err)
				}
			}
			if flags.Changed("target") {
				if p.TargetCompletion, err = parseOptionalDateFlag("target", target); err != nil {
					return err
				}
			}
			if flags.Changed("contract-value") {
				p.ContractValue = contractValue
			}
			if flags.Changed("user") {
				p.AssignedUsers = users
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			printf(cmd, "Updated project %s [%s]\n", p.Name, p.ProjectNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "Project number")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&client, "client", "", "Client")
	cmd.Flags().StringVar(&location, "location", "", "Site location")
	cmd.Flags().StringVar(&status, "status", "", "Status (planning|in_progress|on_hold|completed|cancelled)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&target, "target", "", "Target completion (YYYY-MM-DD, blank to clear)")
	cmd.Flags().Float64Var(&contractValue, "contract-value", 0, "Contract value in dollars")
	cmd.Flags().StringSliceVar(&users, "user", nil, "Assigned user emails (replaces the list)")

	return cmd
}

func projectAction(app *App, use, short, verb string, fn func(ctx context.Context, id string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " PROJECT",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := fn(cmd.Context(), p.ID); err != nil {
				return err
			}
			printf(cmd, "%s project %s [%s]\n", verb, p.Name, p.ProjectNumber)
			return nil
		},
	}
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	return projectAction(app, "archive", "Archive a project", "Archived", app.Projects.Archive)
}

func newProjectUnarchiveCmd(app *App) *cobra.Command {
	return projectAction(app, "unarchive", "Unarchive a project", "Unarchived", app.Projects.Unarchive)
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool
	cmd := projectAction(app, "remove", "Remove an archived project", "Removed", func(ctx context.Context, id string) error {
		return app.Projects.Delete(ctx, id, force)
	})
	cmd.Flags().BoolVar(&force, "force", false, "Remove even if the project is not archived")
	return cmd
}
