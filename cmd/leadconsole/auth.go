package main

import (
	"context"

	"github.com/spf13/cobra"

	"leadconsole/internal/domain"
)

func newAuthCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, sign in and out of the Auth Gateway",
	}
	cmd.AddCommand(
		newSignUpCmd(opts),
		newSignInCmd(opts),
		newLogoutCmd(opts),
		newStatusCmd(opts),
	)
	return cmd
}

func newSignUpCmd(opts *rootOptions) *cobra.Command {
	var in domain.SignUpInput
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withApp(opts, func(ctx context.Context, a *app) (any, error) {
		if err := a.session.SignUp(ctx, in); err != nil {
			return nil, err
		}
		return map[string]string{"next": "leadconsole auth signin --email " + in.Email}, nil
	})
	f := cmd.Flags()
	f.StringVar(&in.FirstName, "first-name", "", "first name")
	f.StringVar(&in.LastName, "last-name", "", "last name")
	f.StringVar(&in.Email, "email", "", "email address")
	f.StringVar(&in.Password, "password", "", "password, at least 6 characters")
	return cmd
}

func newSignInCmd(opts *rootOptions) *cobra.Command {
	var creds domain.Credentials
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and keep the session in the OS keychain",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withApp(opts, func(ctx context.Context, a *app) (any, error) {
		return a.session.SignIn(ctx, creds)
	})
	cmd.Flags().StringVar(&creds.Email, "email", "", "email address")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget it locally",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withApp(opts, func(ctx context.Context, a *app) (any, error) {
		if err := a.session.Logout(ctx); err != nil {
			return nil, err
		}
		return a.session.Info(ctx), nil
	})
	return cmd
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withApp(opts, func(ctx context.Context, a *app) (any, error) {
		return a.session.Info(ctx), nil
	})
	return cmd
}
