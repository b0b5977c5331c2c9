package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/qcdash/qc-dashboard/services/api/session"
)

func newLoginCmd(a *app) *cobra.Command {
	var user, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open the dashboard session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			var res session.LoginResult
			body := map[string]string{"user": user, "password": password}
			if err := a.client.Call(ctx, http.MethodPost, "auth/login", body, &res); err != nil {
				return err
			}
			printf(cmd, "%s (%s)\n", res.Message, res.User)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", session.DefaultUser, "Dashboard user")
	cmd.Flags().StringVar(&password, "password", "", "Dashboard password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Close the dashboard session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			var res session.LoginResult
			if err := a.client.Call(ctx, http.MethodPost, "auth/logout", nil, &res); err != nil {
				return err
			}
			printf(cmd, "%s\n", res.Message)
			return nil
		},
	}
}
