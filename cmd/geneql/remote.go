package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dangerclosesec/geneql/sdk/client"
	"github.com/spf13/cobra"
)

func newRemoteCmd() *cobra.Command {
	var (
		host    string
		token   string
		apiKey  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "remote [query]",
		Short: "Execute a query on a geneqld service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.NewClient(&client.Config{
				BaseURL: host,
				Token:   token,
				APIKey:  apiKey,
				Timeout: timeout,
			})

			res, err := c.Query(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&host, "host", "http://localhost:8080", "geneqld base URL")
	cmd.Flags().StringVar(&token, "token", os.Getenv("GENEQL_TOKEN"), "Bearer token")
	cmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("GENEQL_API_KEY"), "Service API key")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	return cmd
}

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
