package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/steelbuild/internal/cli/formatter"
	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/export"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage labor, equipment and subcontractor resources",
	}

	cmd.AddCommand(
		newResourceAddCmd(app),
		newResourceListCmd(app),
		newResourceCertifyCmd(app),
		newResourceRemoveCmd(app),
		newResourceUtilizationCmd(app),
		newResourceConflictsCmd(app),
	)

	return cmd
}

func newResourceAddCmd(app *App) *cobra.Command {
	var values resourceFormValues
	var status string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if !app.IsInteractive {
					return fmt.Errorf("--interactive requires a terminal")
				}
				if err := resourceForm(&values).Run(); err != nil {
					return err
				}
			} else if values.Name == "" || values.Type == "" {
				return fmt.Errorf("--name and --type are required (or use --interactive)")
			}

			r, err := values.resource()
			if err != nil {
				return err
			}
			r.Status = domain.ResourceStatus(status)
			if err := app.Resources.Create(cmd.Context(), r); err != nil {
				return err
			}
			printf(cmd, "Created %s resource %s [%s]\n", r.Type, r.Name, formatter.TruncID(r.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&values.Name, "name", "", "Resource name")
	cmd.Flags().StringVar(&values.Type, "type", "", "Type (labor|equipment|subcontractor)")
	cmd.Flags().StringVar(&values.Trade, "trade", "", "Trade")
	cmd.Flags().StringVar(&values.MaxConcurrent, "max-concurrent", "", "Max concurrent active tasks")
	cmd.Flags().StringVar(&values.HourlyRate, "rate", "", "Hourly rate")
	cmd.Flags().StringVar(&status, "status", "", "Status (available|assigned|unavailable|maintenance)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the resource with a form")

	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := app.Resources.List(cmd.Context(), domain.ResourceType(typ))
			if err != nil {
				return err
			}
			if len(resources) == 0 {
				writeln(cmd, "No resources found.")
				return nil
			}
			writeln(cmd, formatter.FormatResourceList(resources, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Only resources of this type")

	return cmd
}

func newResourceCertifyCmd(app *App) *cobra.Command {
	var name, expires string

	cmd := &cobra.Command{
		Use:   "certify RESOURCE",
		Short: "Add or renew a certification on a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := resolveResource(ctx, app, args[0])
			if err != nil {
				return err
			}
			expiresOn, err := parseOptionalDateFlag("expires", expires)
			if err != nil {
				return err
			}

			replaced := false
			for i, c := range r.Certifications {
				if strings.EqualFold(c.Name, name) {
					r.Certifications[i].ExpiresOn = expiresOn
					replaced = true
				}
			}
			if !replaced {
				r.Certifications = append(r.Certifications, domain.Certification{Name: name, ExpiresOn: expiresOn})
			}
			if err := app.Resources.Update(ctx, r); err != nil {
				return err
			}
			printf(cmd, "Recorded %s for %s\n", name, r.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "cert", "", "Certification name (e.g. OSHA 30)")
	cmd.Flags().StringVar(&expires, "expires", "", "Expiry date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("cert")

	return cmd
}

func newResourceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove RESOURCE",
		Short: "Remove a resource and its task and SOV assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolveResource(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Resources.Delete(cmd.Context(), r.ID); err != nil {
				return err
			}
			printf(cmd, "Removed resource %s\n", r.Name)
			return nil
		},
	}
}

type utilizationFlags struct {
	project  string
	typ      string
	problems bool
	asOf     string
}

func (f *utilizationFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.project, "project", "", "Only resources assigned to this project")
	fs.StringVar(&f.typ, "type", "", "Only resources of this type")
	fs.BoolVar(&f.problems, "problems", false, "Only over-allocated or conflicting resources")
	fs.StringVar(&f.asOf, "as-of", "", "Evaluate allocations on this date (YYYY-MM-DD)")
}

func (f *utilizationFlags) compute(cmd *cobra.Command, app *App) (*contract.UtilizationResponse, error) {
	ctx := cmd.Context()
	req := contract.NewUtilizationRequest()
	var err error
	if req.ProjectID, err = resolveProjectFlag(ctx, app, f.project); err != nil {
		return nil, err
	}
	req.ResourceType = f.typ
	req.OnlyProblems = f.problems
	if f.asOf != "" {
		d, err := domain.ParseDate(f.asOf)
		if err != nil {
			return nil, fmt.Errorf("--as-of: %w", err)
		}
		req.Now = &d
	} else if app.Now != nil {
		now := app.Now()
		req.Now = &now
	}
	return app.Utilization.Compute(ctx, req)
}

func newResourceUtilizationCmd(app *App) *cobra.Command {
	var flags utilizationFlags
	var format, output string

	cmd := &cobra.Command{
		Use:   "utilization",
		Short: "Show resource utilization and over-allocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := flags.compute(cmd, app)
			if err != nil {
				return err
			}
			if format == "" {
				writeln(cmd, formatter.FormatUtilization(resp))
				return nil
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return writeExport(cmd, output, "utilization", f, export.UtilizationTable(resp))
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "export", "", "Export instead of printing (csv|xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export file (default utilization.<format>, - for stdout)")

	return cmd
}

func newResourceConflictsCmd(app *App) *cobra.Command {
	var flags utilizationFlags

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List double-booked resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := flags.compute(cmd, app)
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatConflicts(resp))
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

// writeExport writes t to path, or to stdout when path is "-".
func writeExport(cmd *cobra.Command, path, base string, f export.Format, t export.Table) error {
	if path == "" {
		path = base + f.Extension()
	}
	w := out(cmd)
	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer file.Close()
		w = file
	}
	if err := export.Write(w, f, t); err != nil {
		return err
	}
	if path != "-" {
		printf(cmd, "Wrote %s\n", path)
	}
	return nil
}
