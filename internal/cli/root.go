package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/steelbuild/internal/app"
	"github.com/alexanderramin/steelbuild/internal/config"
	"github.com/alexanderramin/steelbuild/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the services and process settings used by CLI commands.
type App struct {
	*app.Services

	Config  config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	// IsInteractive is true when stdin and stdout are terminals. Forms and
	// the live dashboard only run interactively.
	IsInteractive bool

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// NewRootCmd creates the top-level "steelbuild" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "steelbuild",
		Short:         "Construction project, resource and field tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newResourceCmd(app),
		newAllocationCmd(app),
		newSOVCmd(app),
		newRFICmd(app),
		newChangeOrderCmd(app),
		newDeliveryCmd(app),
		newFinancialCmd(app),
		newIncidentCmd(app),
		newNotificationCmd(app),
		newReportCmd(app),
		newMonitorCmd(app),
		newImportCmd(app),
		newWhoamiCmd(app),
		newDashboardCmd(app),
		newServeCmd(app),
	)

	return root
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func writeln(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
