package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/totegamma/livefyre"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Build and check network tokens",
	}

	var (
		displayName string
		expires     time.Duration
	)
	user := &cobra.Command{
		Use:   "user <userId>",
		Short: "Sign a user auth token",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			token, err := a.network.BuildUserAuthToken(args[0], displayName, expires)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		}),
	}
	user.Flags().StringVar(&displayName, "display-name", "", "display name claim")
	user.Flags().DurationVar(&expires, "expires", livefyre.DefaultExpires, "token lifetime")

	system := &cobra.Command{
		Use:   "system",
		Short: "Sign a system token",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			token, err := a.network.BuildSystemToken()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		}),
	}

	validate := &cobra.Command{
		Use:   "validate <token>",
		Short: "Check that a token is an unexpired system token of the network",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if !a.network.ValidateSystemToken(args[0]) {
				return fmt.Errorf("token is not a valid system token for %s", a.network.Name())
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		}),
	}

	cmd.AddCommand(user, system, validate)
	return cmd
}

func checksumCmd() *cobra.Command {
	var legacy bool
	var tags string

	cmd := &cobra.Command{
		Use:   "checksum <title> <url>",
		Short: "Print the checksum of collection attributes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sum string
				err error
			)
			if legacy {
				sum, err = livefyre.LegacyChecksum(args[0], args[1], tags)
			} else {
				sum, err = livefyre.Checksum(map[string]any{"title": args[0], "url": args[1], "tags": tags})
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	cmd.Flags().StringVar(&tags, "tags", "", "comma separated tags")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "use the historical url, tags, title key order")
	return cmd
}
