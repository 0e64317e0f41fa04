package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session cookie",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"password": pass,
			}

			body, err := client.Post("/api/login", req)
			if err != nil {
				return err
			}

			// Save cookie
			if err := cfg.SaveCookie(client.SessionCookie()); err != nil {
				return fmt.Errorf("failed to save cookie: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(LoginResult{Message: string(body), Username: user})
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the user of the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MeResult
			if err := client.GetJSON("/api/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session and forget the cookie",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Post("/api/logout", nil); err != nil {
				return err
			}

			if err := cfg.ClearCookie(); err != nil {
				return fmt.Errorf("failed to remove cookie: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}
