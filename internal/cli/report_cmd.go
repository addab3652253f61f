package cli

import (
	"github.com/alexanderramin/steelbuild/internal/cli/formatter"
	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/export"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate metrics across projects and tracking records",
	}

	cmd.AddCommand(
		newReportListCmd(app),
		newReportRunCmd(app),
		newReportExportCmd(app),
	)

	return cmd
}

type reportFlags struct {
	metrics []string
	project string
	from    string
	to      string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.metrics, "metric", "m", nil, "Metric key (repeatable or comma-separated)")
	cmd.Flags().StringVar(&f.project, "project", "", "Only this project")
	cmd.Flags().StringVar(&f.from, "from", "", "Earliest record date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Latest record date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("metric")
}

func (f *reportFlags) run(cmd *cobra.Command, app *App) (*contract.ReportResponse, error) {
	req := contract.NewReportRequest(f.metrics...)
	var err error
	if req.ProjectID, err = resolveProjectFlag(cmd.Context(), app, f.project); err != nil {
		return nil, err
	}
	req.From, req.To = f.from, f.to
	return app.Reports.Run(cmd.Context(), req)
}

func newReportListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			writeln(cmd, formatter.FormatMetricCatalog(app.Reports.Metrics()))
			return nil
		},
	}
}

func newReportRunCmd(app *App) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := flags.run(cmd, app)
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatReport(resp))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newReportExportCmd(app *App) *cobra.Command {
	var flags reportFlags
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Compute metrics and write them to a CSV or XLSX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			resp, err := flags.run(cmd, app)
			if err != nil {
				return err
			}
			return writeExport(cmd, output, "report", f, export.ReportTable(resp))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "csv", "Export format (csv|xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export file (default report.<format>, - for stdout)")
	return cmd
}
