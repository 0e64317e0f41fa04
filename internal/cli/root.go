package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "bookingctl",
		Short: "CLI tool for the appointment booking login API",
		Long: `bookingctl talks to the appointment booking backend.

It logs in with a username and password, keeps the session cookie in a file
between invocations, can query or end the current session, and manages the
doctor directory.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load cookie from file if not provided via flag/env
			if err := cfg.LoadCookie(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.Cookie, cfg.Origin)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BOOKING_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Cookie, "cookie", cfg.Cookie, "Session cookie value (env: BOOKING_COOKIE)")
	rootCmd.PersistentFlags().StringVar(&cfg.CookieFile, "cookie-file", cfg.CookieFile, "Cookie file path (env: BOOKING_COOKIE_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.Origin, "origin", cfg.Origin, "Origin header to send (env: BOOKING_ORIGIN)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newMeCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newDoctorsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
