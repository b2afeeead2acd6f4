package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(opts *connectOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check that the configured credentials can sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := connect(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close(ctx)

			info, err := s.gateway.CheckSession(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !info.Authenticated {
				return fmt.Errorf("signed in, but the session was not accepted")
			}
			fmt.Fprintln(out, "signed in")
			if len(info.User) > 0 {
				fmt.Fprintf(out, "user: %s\n", info.User)
			}
			return nil
		},
	}
}
