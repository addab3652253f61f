package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/steelbuild/internal/api"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr, schedule string
	var noMonitor, accessLog bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the critical event monitor on a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := app.logger()

			server, err := api.NewApp(app.Services, api.Options{
				Logger:    log,
				Metrics:   app.Metrics,
				AccessLog: accessLog,
			})
			if err != nil {
				return err
			}

			var scheduler *cron.Cron
			if !noMonitor {
				scheduler = cron.New()
				_, err := scheduler.AddFunc(schedule, func() {
					ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
					defer cancel()
					resp, err := app.Monitor.MonitorCriticalEvents(ctx)
					if err != nil {
						log.Error("scheduled monitor run failed", zap.Error(err))
						return
					}
					log.Info("scheduled monitor run",
						zap.Int("alerts_found", resp.AlertsFound),
						zap.Int("notifications_sent", resp.NotificationsSent))
				})
				if err != nil {
					return err
				}
				scheduler.Start()
				log.Info("monitor scheduled", zap.String("schedule", schedule))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				log.Info("listening", zap.String("addr", addr))
				errc <- server.Listen(addr)
			}()

			select {
			case err := <-errc:
				if scheduler != nil {
					<-scheduler.Stop().Done()
				}
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			if scheduler != nil {
				<-scheduler.Stop().Done()
			}
			if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.Config.HTTPAddr, "Listen address")
	cmd.Flags().StringVar(&schedule, "schedule", app.Config.MonitorSchedule, "Cron schedule for monitorCriticalEvents")
	cmd.Flags().BoolVar(&noMonitor, "no-monitor", false, "Do not schedule monitor runs")
	cmd.Flags().BoolVar(&accessLog, "access-log", false, "Log every HTTP request")

	return cmd
}
