package cli

import "github.com/spf13/cobra"

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := app.Auth.Me(cmd.Context())
			if err != nil {
				return err
			}
			printf(cmd, "%s <%s> (%s)\n", me.FullName, me.Email, me.Role)
			return nil
		},
	}
}
