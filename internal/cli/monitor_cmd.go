package cli

import (
	"encoding/json"

	"github.com/alexanderramin/steelbuild/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newMonitorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Scan for critical events and notify project users",
	}
	cmd.AddCommand(newMonitorRunCmd(app), newMonitorFunctionsCmd(app))
	return cmd
}

func newMonitorRunCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run monitorCriticalEvents once",
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := func() {}
			if app.IsInteractive && !asJSON {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Scanning for critical events...")
			}
			resp, err := app.Monitor.MonitorCriticalEvents(cmd.Context())
			stop()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(out(cmd))
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			writeln(cmd, formatter.FormatMonitorResult(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw function response")
	return cmd
}

func newMonitorFunctionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List server functions callable through the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range app.Functions.Names() {
				writeln(cmd, name)
			}
			return nil
		},
	}
}
