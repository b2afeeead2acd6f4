// Command adminctl is an operator CLI for the call-log administration API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	opts := &connectOptions{}

	cmd := &cobra.Command{
		Use:           "adminctl",
		Short:         "Operator CLI for the call-log administration API",
		Long:          "adminctl signs in to the admin API and browses, inspects and exports call logs from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.adminURL, "admin-url", "", "admin API root (default from ADMIN_API_URL)")
	flags.StringVar(&opts.dashboardURL, "dashboard-url", "", "dashboard API root (default from DASHBOARD_API_URL)")
	flags.StringVarP(&opts.username, "username", "u", "", "login user (default from UPSTREAM_USERNAME)")
	flags.StringVar(&opts.passwordRef, "password-ref", "", "vault reference of the password, e.g. dotenv://ADMIN_PASSWORD (default from UPSTREAM_PASSWORD_REF)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newLoginCmd(opts))
	cmd.AddCommand(newCallsCmd(opts))
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "adminctl %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
