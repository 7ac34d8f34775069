package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dangerclosesec/geneql/internal/auth"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		secret string
		expiry time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token [client-id]",
		Short: "Issue a bearer token for geneqld",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("secret", secret); err != nil {
				return err
			}
			token, err := auth.NewTokenManager(secret, expiry).Generate(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "JWT signing secret")
	cmd.Flags().DurationVar(&expiry, "expiry", 24*time.Hour, "Token lifetime")
	return cmd
}

func newHashKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key [key]",
		Short: "Hash an API key for GENEQL_API_KEY_HASH; generates a key when none is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				var err error
				if key, err = auth.GenerateKey(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "key:  %s\n", key)
			}

			hash, err := auth.HashKey(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "hash: %s\n", hash)
			return nil
		},
	}
}
