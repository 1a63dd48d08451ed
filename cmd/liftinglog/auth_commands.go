package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/DrewAMSD/lifting-log/api"
	"github.com/DrewAMSD/lifting-log/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newLoginCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			a.manager.Resolve(ctx)

			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return errors.Wrap(err, "reading password")
				}
				password = strings.TrimSpace(line)
			}

			sess, err := a.manager.Login(ctx, args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.Identity.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the refresh token and clear the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			a.manager.Resolve(ctx)
			a.manager.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			a.manager.Resolve(ctx)

			if _, err := a.gate.Require(ctx); err != nil {
				return notLoggedIn(err)
			}
			accessToken, err := a.manager.AccessToken(ctx)
			if err != nil {
				return notLoggedIn(err)
			}
			profile, err := a.client.Me(ctx, accessToken)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Username:  %s\nEmail:     %s\nFull name: %s\n",
				profile.Username, profile.Email, profile.FullName)
			return nil
		},
	}
}

func newSignupCommand() *cobra.Command {
	var email, fullName, password string

	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			created, err := a.client.CreateUser(cmd.Context(), api.NewUser{
				Username: args[0],
				Email:    email,
				FullName: fullName,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %q created\n", created)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&fullName, "full-name", "", "full name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newDeleteAccountCommand() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Permanently delete the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("refusing to delete without --yes")
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			a.manager.Resolve(ctx)

			if err := a.manager.DeleteAccount(ctx); err != nil {
				if errors.Is(err, session.ErrNotAuthenticated) {
					return notLoggedIn(err)
				}
				// The local session is already gone; surface the
				// server-side result for the user.
				return errors.Wrap(err, "local session cleared, but server-side deletion failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deletion")
	return cmd
}

func notLoggedIn(err error) error {
	if errors.Is(err, session.ErrNotAuthenticated) || errors.Is(err, session.ErrSessionExpired) {
		return errors.New("not logged in; run 'liftinglog login <username>'")
	}
	return err
}
