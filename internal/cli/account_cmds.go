package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in (demo, any credentials are accepted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.session.Login(email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Logged in as "+u.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	return cmd
}

func newSignupCmd(a *app) *cobra.Command {
	var name, email, password, confirm string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a demo account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.session.Signup(name, email, password, confirm)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("Welcome, %s!", u.Name)))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email")
	cmd.Flags().StringVar(&password, "password", "", "Password (at least 6 characters)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Repeat the password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, ok, err := a.session.Current()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(w, mutedStyle.Render("Not logged in"))
				return nil
			}
			if u.Name != "" {
				fmt.Fprintf(w, "%s <%s>\n", u.Name, u.Email)
				return nil
			}
			fmt.Fprintln(w, u.Email)
			return nil
		},
	}
}
