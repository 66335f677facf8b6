package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/bokdeok/internal/app"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

var errNotLoggedIn = errors.New("not logged in")

// password returns the flag value, falling back to BOKDEOK_PASSWORD so it
// need not appear in shell history.
func password(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := viper.GetString("password"); env != "" {
		return env, nil
	}
	return "", errors.New("--password or BOKDEOK_PASSWORD is required")
}

func loginCmd() *cobra.Command {
	var email, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Example: `  bokdeok login --email test@bokdeok.com --password secret

  # Read the password from the environment
  BOKDEOK_PASSWORD=secret bokdeok login --email test@bokdeok.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := password(pass)
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				user, err := a.Session.Login(ctx, domain.Credentials{Email: email, Password: pw})
				if err != nil {
					return err
				}

				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), user)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%d scraps)\n", displayName(user), a.Scraps.Count())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&pass, "password", "", "account password")
	cobra.CheckErr(cmd.MarkFlagRequired("email"))

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				a.Session.Logout(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
				return nil
			})
		},
	}
}

func registerCmd() *cobra.Command {
	var form domain.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long:  "Create an account. Registration does not sign in; run login afterwards.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := password(form.Password)
			if err != nil {
				return err
			}
			form.Password = pw

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Session.Register(ctx, form); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. You can now log in.\n", form.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password")
	cmd.Flags().StringVar(&form.Nickname, "nickname", "", "display name")
	cobra.CheckErr(cmd.MarkFlagRequired("email"))

	return cmd
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(_ context.Context, a *app.App) error {
				user, ok := a.Session.User()
				if !ok {
					return errNotLoggedIn
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), user)
				}
				return printUserDetail(cmd.OutOrStdout(), &user, a.Scraps.Count())
			})
		},
	}
}

func displayName(u domain.User) string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Email
}
