package cli

import (
	"github.com/alexanderramin/steelbuild/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project with its resources, tasks and billing lines from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			p := result.Project
			printf(cmd, "Imported %s %s [%s]\n", p.ProjectNumber, p.Name, formatter.TruncID(p.ID))
			printf(cmd, "  %d resources, %d tasks, %d allocations, %d SOV lines\n",
				result.ResourceCount, result.TaskCount, result.AllocationCount, result.SOVItemCount)
			return nil
		},
	}
}
