package cli

import (
	"github.com/alexanderramin/steelbuild/internal/cli/formatter"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage project tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var project, name, status, start, end string
	var progress float64
	var resources, equipment []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			crew, err := resolveResourceIDs(ctx, app, resources)
			if err != nil {
				return err
			}
			equip, err := resolveResourceIDs(ctx, app, equipment)
			if err != nil {
				return err
			}

			t := &domain.Task{
				ProjectID:         p.ID,
				Name:              name,
				Status:            domain.TaskStatus(status),
				StartDate:         start,
				EndDate:           end,
				Progress:          progress,
				AssignedResources: crew,
				AssignedEquipment: equip,
			}
			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			printf(cmd, "Created task %s [%s] in %s\n", t.Name, formatter.TruncID(t.ID), p.ProjectNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project number or id")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&status, "status", "", "Status (not_started|in_progress|on_hold|completed|cancelled)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&progress, "progress", 0, "Percent complete")
	cmd.Flags().StringSliceVar(&resources, "resource", nil, "Assigned resource id or name (repeatable)")
	cmd.Flags().StringSliceVar(&equipment, "equipment", nil, "Assigned equipment id or name (repeatable)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project, status, resource string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f := repository.TaskFilter{Status: domain.TaskStatus(status)}
			var err error
			if f.ProjectID, err = resolveProjectFlag(ctx, app, project); err != nil {
				return err
			}
			if resource != "" {
				r, err := resolveResource(ctx, app, resource)
				if err != nil {
					return err
				}
				f.ResourceID = r.ID
			}

			tasks, err := app.Tasks.List(ctx, f)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				writeln(cmd, "No tasks found.")
				return nil
			}
			names, err := resourceNames(ctx, app)
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatTaskTable(tasks, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only tasks of this project")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	cmd.Flags().StringVar(&resource, "resource", "", "Only tasks assigned to this resource")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var name, status, start, end string
	var progress float64
	var resources, equipment []string

	cmd := &cobra.Command{
		Use:   "update TASK_ID",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				t.Name = name
			}
			if flags.Changed("status") {
				t.Status = domain.TaskStatus(status)
			}
			if flags.Changed("start") {
				t.StartDate = start
			}
			if flags.Changed("end") {
				t.EndDate = end
			}
			if flags.Changed("progress") {
				t.Progress = progress
			}
			if flags.Changed("resource") {
				if t.AssignedResources, err = resolveResourceIDs(ctx, app, resources); err != nil {
					return err
				}
			}
			if flags.Changed("equipment") {
				if t.AssignedEquipment, err = resolveResourceIDs(ctx, app, equipment); err != nil {
					return err
				}
			}

			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			printf(cmd, "Updated task %s [%s]\n", t.Name, formatter.TruncID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&status, "status", "", "Status")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&progress, "progress", 0, "Percent complete")
	cmd.Flags().StringSliceVar(&resources, "resource", nil, "Assigned resources (replaces the list)")
	cmd.Flags().StringSliceVar(&equipment, "equipment", nil, "Assigned equipment (replaces the list)")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TASK_ID",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(cmd.Context(), t.ID); err != nil {
				return err
			}
			printf(cmd, "Removed task %s\n", t.Name)
			return nil
		},
	}
}
