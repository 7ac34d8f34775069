// cmd/geneql/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/dangerclosesec/geneql"
	"github.com/dangerclosesec/geneql/query/parser"
	"github.com/dangerclosesec/geneql/store/memory"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "geneql",
		Short:         "geneql runs Genesis Query Language statements",
		Long:          `geneql tokenizes, parses and executes GeneQL queries locally or against a geneqld service.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newTokensCmd(),
		newParseCmd(),
		newExecCmd(),
		newRemoteCmd(),
		newMigrateCmd(),
		newTokenCmd(),
		newHashKeyCmd(),
	)
	return rootCmd
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [query]",
		Short: "Print the tokens of a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := parser.Tokenize(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tok := range tokens {
				fmt.Fprintf(w, "%d:%d\t%s\t%q\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Literal)
			}
			return w.Flush()
		},
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [query]",
		Short: "Parse a query and print its canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parser.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", q.Type(), q)
			return nil
		},
	}
}

func newExecCmd() *cobra.Command {
	var (
		seedFile string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "exec [query...]",
		Short: "Execute queries against an in-memory store",
		Long:  `Load a JSON seed into an in-memory store and execute each query argument in order.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := memory.New()
			if seedFile != "" {
				var err error
				if s, err = memory.LoadFile(seedFile); err != nil {
					return err
				}
			}

			client := geneql.New(s, geneql.WithTimeout(timeout))
			failed := false
			for _, text := range args {
				res := client.Execute(cmd.Context(), text)
				if err := writeResult(cmd.OutOrStdout(), res); err != nil {
					return err
				}
				failed = failed || !res.Success
			}
			if failed {
				return fmt.Errorf("one or more queries failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&seedFile, "seed", "s", "", "JSON seed file")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Per-operation store timeout")
	return cmd
}

func writeResult(out io.Writer, res geneql.QueryResult) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
